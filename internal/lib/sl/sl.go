// Package sl содержит общие атрибуты slog, которыми пользуются все слои сервиса.
package sl

import "log/slog"

// Err атрибут "error" с текстом ошибки. Для nil пишется "<nil>", чтобы вызов
// в ветке без ошибки не ронял процесс.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// Op атрибут "op" с именем операции, например "handlers.content.generate".
func Op(op string) slog.Attr {
	return slog.String("op", op)
}
