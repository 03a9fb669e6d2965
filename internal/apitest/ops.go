package apitest

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *authHandler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID:   "auth-register",
		Method:        http.MethodPost,
		Path:          "/auth/register",
		Summary:       "Регистрация пользователя",
		Tags:          []string{"auth"},
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}

func (h *authHandler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID:   "auth-login",
		Method:        http.MethodPost,
		Path:          "/auth/login",
		Summary:       "Вход, выдает bearer-токен",
		Tags:          []string{"auth"},
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}

func (h *sessionHandler) meOp() huma.Operation {
	return huma.Operation{
		OperationID:   "auth-me",
		Method:        http.MethodGet,
		Path:          "/auth/me",
		Summary:       "Текущий пользователь",
		Tags:          []string{"auth"},
		Security:      bearer,
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}

func (h *noteHandler) listOp() huma.Operation {
	return huma.Operation{
		OperationID:   "notes-list",
		Method:        http.MethodGet,
		Path:          "/notes",
		Summary:       "Заметки пользователя, новые первыми",
		Tags:          []string{"notes"},
		Security:      bearer,
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}

func (h *noteHandler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "notes-create",
		Method:        http.MethodPost,
		Path:          "/notes",
		Summary:       "Создать заметку",
		Tags:          []string{"notes"},
		Security:      bearer,
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}

func (h *noteHandler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID:   "notes-update",
		Method:        http.MethodPut,
		Path:          "/notes/{id}",
		Summary:       "Обновить заметку",
		Tags:          []string{"notes"},
		Security:      bearer,
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}

func (h *noteHandler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   "notes-delete",
		Method:        http.MethodDelete,
		Path:          "/notes/{id}",
		Summary:       "Удалить заметку",
		Tags:          []string{"notes"},
		Security:      bearer,
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}

func (h *noteHandler) shareOp() huma.Operation {
	return huma.Operation{
		OperationID:   "notes-share",
		Method:        http.MethodPost,
		Path:          "/notes/{id}/share",
		Summary:       "Изменить видимость заметки",
		Tags:          []string{"notes"},
		Security:      bearer,
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}

func (h *publicHandler) listOp() huma.Operation {
	return huma.Operation{
		OperationID:   "public-notes-list",
		Method:        http.MethodGet,
		Path:          "/public-notes",
		Summary:       "Публичные заметки всех пользователей",
		Tags:          []string{"public"},
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}

func (h *publicHandler) sharedOp() huma.Operation {
	return huma.Operation{
		OperationID:   "shared-note",
		Method:        http.MethodGet,
		Path:          "/shared/{id}",
		Summary:       "Публичная заметка по ссылке",
		Tags:          []string{"public"},
		DefaultStatus: http.StatusOK,
		Middlewares:   h.middleware,
	}
}
