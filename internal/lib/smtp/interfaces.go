// Package smtp содержит почтовый транспорт сервиса уведомлений:
// через него уходят приветственные письма новым учётным записям.
package smtp

import "io"

// Client — минимальный контракт SMTP-сессии, который нужен отправителю
// писем. За ним скрывается *smtp.Client, в тестах — мок.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface открывает SMTP-сессию и сообщает адрес отправителя.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
