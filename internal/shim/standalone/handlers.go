// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package standalone

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"go.amzn.com/progrunner/internal/fatalerror"
)

const (
	DoneFailedHTTPCode = 502

	functionErrorHeader = "X-Amz-Function-Error"
	requestIDHeader     = "X-Amzn-RequestId"
)

type ErrorType int

const (
	ClientInvalidRequest ErrorType = iota
)

func (t ErrorType) String() string {
	switch t {
	case ClientInvalidRequest:
		return "Client.InvalidRequest"
	}
	return fmt.Sprintf("Cannot stringify standalone.ErrorType.%d", int(t))
}

// ErrorResponse mirrors the body Lambda returns for failed invocations.
type ErrorResponse struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorType    string `json:"errorType"`
}

func renderError(w http.ResponseWriter, r *http.Request, status int, errType, msg string) {
	render.Status(r, status)
	render.JSON(w, r, &ErrorResponse{ErrorType: errType, ErrorMessage: msg})
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pong"))
}

// InvokeHandler runs one invocation through handler, the same adapter lambda.Start uses.
func InvokeHandler(w http.ResponseWriter, r *http.Request, handler lambda.Handler) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, ClientInvalidRequest.String(), fmt.Sprintf("Failed to read full body: %s", err))
		return
	}
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	if !json.Valid(payload) {
		renderError(w, r, http.StatusBadRequest, ClientInvalidRequest.String(), fmt.Sprintf("Invalid json %s", string(payload)))
		return
	}

	requestID := uuid.New().String()
	ctx := lambdacontext.NewContext(r.Context(), &lambdacontext.LambdaContext{
		AwsRequestID:       requestID,
		InvokedFunctionArn: fmt.Sprintf("arn:aws:lambda:us-east-1:012345678912:function:%s", chi.URLParam(r, "function")),
	})
	w.Header().Set(requestIDHeader, requestID)

	response, err := handler.Invoke(ctx, payload)
	if err != nil {
		errType := fatalerror.TypeOf(err)
		if errType == fatalerror.Unknown {
			// the adapter failed to decode the event
			renderError(w, r, http.StatusBadRequest, ClientInvalidRequest.String(), err.Error())
			return
		}
		log.WithError(err).WithField("requestId", requestID).Error("Invocation failed")
		w.Header().Set(functionErrorHeader, "Unhandled")
		renderError(w, r, DoneFailedHTTPCode, string(errType), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(response)
}
