package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
)

func main() {
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})

	if err := buildRootCommand().Execute(); err != nil {
		logger.Errorf("❌ %v", err)
		os.Exit(1)
	}
}

// configureLogger 设置日志级别
func configureLogger(level string) error {
	lvl, err := logger.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(lvl)
	return nil
}
