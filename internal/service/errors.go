package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrEmptyAuthor  = errors.New("用户名不能为空")
	ErrEmptyBody    = errors.New("至少需要填写内容或上传图片")
	ErrParamInvalid = errors.New("参数错误")
	UnExpectedError = errors.New("服务器内部错误")
)

var ErrorMap = map[error]int{
	ErrEmptyAuthor:  BadRequest,
	ErrEmptyBody:    BadRequest,
	ErrParamInvalid: BadRequest,
	UnExpectedError: InternalServerError,
}
