package v1

import (
	"context"
	"errors"
	"net/http"

	"TrainingLog/apps/friend/internal/service"
	"TrainingLog/consts"
	"TrainingLog/pkg/logger"
	"TrainingLog/pkg/result"

	"github.com/gin-gonic/gin"
)

// kindStatus 关系错误类别到 HTTP 状态码
var kindStatus = map[service.ErrorKind]int{
	service.KindSelfReference: http.StatusBadRequest,
	service.KindAlreadyExists: http.StatusBadRequest,
	service.KindNotFound:      http.StatusNotFound,
	service.KindNotVisible:    http.StatusForbidden,
	service.KindDataAccess:    http.StatusInternalServerError,
}

// failWithServiceError 把 service 层错误写成响应。
// DataAccess 已在 service 层带操作数记录过，这里只补充接口信息。
func failWithServiceError(ctx context.Context, c *gin.Context, err error, msg string) {
	relErr, ok := service.AsRelationError(err)
	if !ok {
		logger.Error(ctx, msg,
			logger.String("path", c.FullPath()),
			logger.ErrorField("error", err),
		)
		result.Fail(c, http.StatusInternalServerError, consts.CodeInternalError)
		return
	}

	if relErr.Kind == service.KindDataAccess && errors.Is(relErr.Err, context.DeadlineExceeded) {
		result.Fail(c, http.StatusGatewayTimeout, consts.CodeTimeoutError)
		return
	}

	status, ok := kindStatus[relErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		logger.Error(ctx, msg,
			logger.String("path", c.FullPath()),
			logger.ErrorField("error", err),
		)
	}
	result.Fail(c, status, relErr.Code)
}
