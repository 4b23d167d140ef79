package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

const (
	msgInternalError     = "внутренняя ошибка сервера"
	msgInvalidTransition = "недопустимая смена статуса бронирования"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// Validate общий валидатор DTO по тегам `validate`
var Validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// InvalidTransitionResponse тело ответа 409 при недопустимой смене статуса
type InvalidTransitionResponse struct {
	Code            int    `json:"code"`
	Message         string `json:"message"`
	CurrentStatus   string `json:"currentStatus"`
	RequestedStatus string `json:"requestedStatus"`
}

// RespondJSON пишет ответ в JSON
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с произвольным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondInvalidTransition 409 с текущим и запрошенным статусом брони
func RespondInvalidTransition(w http.ResponseWriter, e *domain.InvalidTransitionError) {
	RespondJSON(w, http.StatusConflict, InvalidTransitionResponse{
		Code:            http.StatusConflict,
		Message:         msgInvalidTransition,
		CurrentStatus:   e.Current.String(),
		RequestedStatus: e.Requested.String(),
	})
}

// DecodeJSON декодирует тело запроса, неизвестные поля - ошибка
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

// DecodeAndValidate декодирует тело и проверяет теги `validate`
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := DecodeJSON(r, dst); err != nil {
		return err
	}
	return ValidateStruct(dst)
}

// ValidateStruct проверяет теги `validate` и склеивает ошибки полей в одну строку
func ValidateStruct(v interface{}) error {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(fields, ", "))
}
