package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"code-darpan/internal/adapter/httpapi"
)

const readHeaderTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.HTTPAddr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides http_addr)")
	return cmd
}

// runServe 阻塞直到 ctx 被取消，然后等待处理中的请求结束
func runServe(ctx context.Context, a *app) error {
	// 1. 组装依赖
	container, err := buildContainer(a.cfg)
	if err != nil {
		return err
	}
	defer closeResources(container)

	var handler *httpapi.Handler
	if err := container.Invoke(func(h *httpapi.Handler) { handler = h }); err != nil {
		return err
	}

	// 2. 启动 HTTP 服务
	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("🚀 listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// 3. 收到停止信号，优雅关闭
	logger.Info("👋 shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
