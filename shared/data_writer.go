package shared

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

var JSONAPI = sonic.Config{
	UseNumber:            true,
	EscapeHTML:           false,
	SortMapKeys:          false,
	CompactMarshaler:     true,
	NoQuoteTextMarshaler: true,
	NoNullSliceOrMap:     true,
}.Froze()

var (
	successResponse       = mustMarshal(Response{Code: 200, Message: "Success"})
	notFoundResponse      = mustMarshal(Response{Code: 404, Message: "Not Found"})
	unauthorizedResponse  = mustMarshal(Response{Code: 401, Message: "Unauthorized"})
	badRequestResponse    = mustMarshal(Response{Code: 400, Message: "Bad Request"})
	internalErrorResponse = mustMarshal(Response{Code: 500, Message: "Internal Server Error"})
)

func mustMarshal(v interface{}) []byte {
	b, _ := JSONAPI.Marshal(v)
	return b
}

// ResponseJSON writes the standard envelope. Payload-less common responses
// are served from pre-encoded bytes.
func ResponseJSON(c *fiber.Ctx, httpCode int, message string, data interface{}) error {
	if data == nil {
		var cached []byte
		switch {
		case httpCode == 200 && message == "Success":
			cached = successResponse
		case httpCode == 400 && message == "Bad Request":
			cached = badRequestResponse
		case httpCode == 401 && message == "Unauthorized":
			cached = unauthorizedResponse
		case httpCode == 404 && message == "Not Found":
			cached = notFoundResponse
		case httpCode == 500 && message == "Internal Server Error":
			cached = internalErrorResponse
		}
		if cached != nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.Status(httpCode).Send(cached)
		}
	}

	body, err := JSONAPI.Marshal(Response{
		Code:    httpCode,
		Message: message,
		Data:    data,
	})
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(httpCode).Send(body)
}

func ResponseOK(c *fiber.Ctx, data interface{}) error {
	return ResponseJSON(c, fiber.StatusOK, "Success", data)
}

func ResponseBadRequest(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Bad Request"
	}
	return ResponseJSON(c, fiber.StatusBadRequest, message, nil)
}

// ResponseError renders err through the envelope, using the AppError status
// when one can be derived.
func ResponseError(c *fiber.Ctx, err error) error {
	if appErr, ok := GetAppError(err); ok {
		return ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	return ResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", nil)
}
