package errors

import "github.com/muhammadheryan/mfg-stock/constant"

type CustomError struct {
	errType constant.ErrorType
	detail  any
}

func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func (c CustomError) ErrorType() constant.ErrorType {
	return c.errType
}

// Detail returns the diagnostic payload attached with SetCustomErrorWithDetail, if any.
func (c CustomError) Detail() any {
	return c.detail
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

func SetCustomErrorWithDetail(errorType constant.ErrorType, detail any) CustomError {
	return CustomError{
		errType: errorType,
		detail:  detail,
	}
}

// Is lets errors.Is match on the error type regardless of the attached detail.
func (c CustomError) Is(target error) bool {
	t, ok := target.(CustomError)
	if !ok {
		return false
	}
	return t.errType == c.errType
}
