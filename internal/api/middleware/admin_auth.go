package middleware

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/ForestReservationService/internal/api/handlers"
)

// AdminPasswordHeader заголовок с паролем администратора
const AdminPasswordHeader = "X-Admin-Password"

const (
	msgMissingPassword = "требуется пароль администратора"
	msgInvalidPassword = "неверный пароль администратора"
)

type Logger interface {
	Warn(format string, v ...interface{})
}

// AdminAuth проверяет X-Admin-Password по bcrypt-хешу
// При пустом хеше все запросы отклоняются
func AdminAuth(passwordHash string, logger Logger) func(http.Handler) http.Handler {
	hash := []byte(passwordHash)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			password := r.Header.Get(AdminPasswordHeader)
			if password == "" {
				logger.Warn("%s %s - Missing admin password, request_id=%s",
					r.Method, r.URL.Path, GetRequestID(r.Context()))
				handlers.RespondUnauthorized(w, msgMissingPassword)
				return
			}

			if len(hash) == 0 || bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
				logger.Warn("%s %s - Invalid admin password, request_id=%s",
					r.Method, r.URL.Path, GetRequestID(r.Context()))
				handlers.RespondUnauthorized(w, msgInvalidPassword)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
