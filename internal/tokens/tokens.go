// tokens — хранилище пары токенов (access/refresh) браузерной сессии.
//
// Хранилище намеренно «глупое»: никакой валидации токенов здесь нет,
// сроками и подписями занимается session.Manager. Запись сразу видна
// всем читателям — промежуточных кэшей у реализаций нет.
package tokens

import "context"

// Pair — текущая пара токенов сессии. Пустая строка означает отсутствие токена.
type Pair struct {
	Access  string
	Refresh string
}

// Store — контракт хранилища токенов, ключ — идентификатор браузерной сессии.
type Store interface {
	// Pair возвращает текущую пару токенов (обе строки пустые, если сессии нет).
	Pair(ctx context.Context, sid string) (Pair, error)
	// SaveAccess заменяет access-токен, не трогая refresh.
	SaveAccess(ctx context.Context, sid, token string) error
	// SaveRefresh заменяет refresh-токен, не трогая access.
	SaveRefresh(ctx context.Context, sid, token string) error
	// SavePair атомарно сохраняет обе половины пары.
	SavePair(ctx context.Context, sid string, p Pair) error
	// Destroy удаляет все токены сессии; отсутствие сессии — не ошибка.
	Destroy(ctx context.Context, sid string) error
	// Close освобождает ресурсы реализации.
	Close() error
}
