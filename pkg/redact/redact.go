// redact — безопасное представление чувствительных значений в логах.
// Токены и пароли в логи не попадают никогда, даже на debug-уровне.
package redact

import "strings"

// Email маскирует локальную часть адреса: "ivanov@clinic.ru" -> "iv***@clinic.ru".
func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := parts[0], parts[1]
	if len(local) > 2 {
		local = local[:2] + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// SID оставляет короткий префикс идентификатора браузерной сессии —
// достаточно для корреляции записей, недостаточно для угона.
func SID(s string) string {
	if len(s) <= 8 {
		return "***"
	}

	return s[:8] + "***"
}

func Token() string    { return "[REDACTED_TOKEN]" }
func Password() string { return "[REDACTED_PASSWORD]" }
