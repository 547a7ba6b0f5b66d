package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"scooter-rental/internal/apperr"
	"scooter-rental/internal/middleware"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

func ok(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, gin.H{"message": payload})
}

// fail writes err as {message}. Internal failures are logged with their cause
// and answered with an opaque message.
func fail(c *gin.Context, l log.FieldLogger, err error) {
	if !apperr.IsDomain(err) {
		l.WithField("request_id", middleware.RequestID(c)).WithError(err).Error("request failed")
		_ = c.Error(err)
	}
	c.JSON(apperr.HTTPStatus(err), gin.H{"message": apperr.Message(err)})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": bindingMessage(err)})
}

// bindingMessage renders validation failures as field -> rule.
func bindingMessage(err error) interface{} {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			if fe.Param() != "" {
				out[fe.Field()] = fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param())
				continue
			}
			out[fe.Field()] = fmt.Sprintf("must satisfy %s", fe.Tag())
		}
		return out
	}
	return "malformed request body"
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// numericCode accepts a verification code sent as a JSON number or a numeric
// string.
type numericCode int

func (n *numericCode) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	v, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("code must be numeric: %w", err)
	}
	*n = numericCode(v)
	return nil
}
