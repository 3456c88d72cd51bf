// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package standalone serves the Lambda invoke API locally so a bundle can be
// exercised without deploying it.
package standalone

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/go-chi/chi"
)

// InvokePath matches the path the Lambda Invoke API and the runtime interface emulator use.
const InvokePath = "/2015-03-31/functions/{function}/invocations"

func NewHTTPRouter(handler lambda.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(standaloneAccessLogDecorator)

	r.Post(InvokePath, func(w http.ResponseWriter, r *http.Request) { InvokeHandler(w, r, handler) })
	r.Get("/test/ping", func(w http.ResponseWriter, r *http.Request) { PingHandler(w, r) })
	return r
}

// ListenAndServe serves the router on addr until ctx is done.
func ListenAndServe(ctx context.Context, addr string, handler lambda.Handler) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: NewHTTPRouter(handler),
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
