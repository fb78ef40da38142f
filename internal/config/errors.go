package config

import "errors"

var (
	// ErrMalformedTuning 调优文件格式错误
	ErrMalformedTuning = errors.New("malformed tuning file")

	// ErrUnsupportedFormat 不支持的配置文件格式
	ErrUnsupportedFormat = errors.New("unsupported config file format")
)
