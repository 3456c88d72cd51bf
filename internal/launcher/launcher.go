// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package launcher fans a single installed function out to many concurrent
// synchronous invocations and collects every worker's result.
package launcher

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"go.amzn.com/progrunner/internal/fatalerror"
	"go.amzn.com/progrunner/internal/shim"
)

// WorkerPlaceholder in an argument is replaced by the worker's index.
const WorkerPlaceholder = "{worker}"

// Invoker is implemented by *lambda.Client.
type Invoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

var _ Invoker = (*lambda.Client)(nil)

type Plan struct {
	FunctionName string
	Workers      int
	Args         []string
	// Concurrency caps in-flight invocations, 0 runs every worker at once.
	Concurrency int
}

type WorkerResult struct {
	Worker int
	shim.Result
}

type Launcher struct {
	client Invoker
	// OnResult, when set, is called once per successfully decoded response, never concurrently.
	OnResult func(WorkerResult)

	mu sync.Mutex
}

func NewLauncher(client Invoker) *Launcher {
	return &Launcher{client: client}
}

// Run invokes every worker in plan and waits for all of them. Results are
// ordered by worker index. The returned error names the first failed worker.
func (l *Launcher) Run(ctx context.Context, plan Plan) ([]WorkerResult, error) {
	if plan.Workers <= 0 {
		return nil, fatalerror.Newf(fatalerror.LocalInputError, "worker count must be positive, got %d", plan.Workers)
	}

	logger := log.WithFields(log.Fields{"run": uuid.New().String(), "function": plan.FunctionName})
	logger.Infof("Invoking %d workers", plan.Workers)

	results := make([]WorkerResult, plan.Workers)
	var g errgroup.Group
	if plan.Concurrency > 0 {
		g.SetLimit(plan.Concurrency)
	}

	for i := 0; i < plan.Workers; i++ {
		worker := i
		g.Go(func() error {
			result, err := l.invoke(ctx, plan.FunctionName, worker, WorkerArgs(plan.Args, worker))
			if err != nil {
				logger.WithError(err).WithField("worker", worker).Error("Worker invocation failed")
				return err
			}
			results[worker] = result
			l.report(result)

			if result.Retcode != 0 {
				return fatalerror.Newf(fatalerror.WorkerFailed, "worker failed: %d (retcode=%d)", worker, result.Retcode)
			}
			return nil
		})
	}

	err := g.Wait()
	logger.Debug("All workers finished")
	return results, err
}

func (l *Launcher) report(result WorkerResult) {
	if l.OnResult == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.OnResult(result)
}

func (l *Launcher) invoke(ctx context.Context, functionName string, worker int, args []string) (WorkerResult, error) {
	payload, err := json.Marshal(shim.Event{Args: args})
	if err != nil {
		return WorkerResult{}, err
	}

	out, err := l.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(functionName),
		InvocationType: types.InvocationTypeRequestResponse,
		LogType:        types.LogTypeNone,
		Payload:        payload,
	})
	if err != nil {
		return WorkerResult{}, fatalerror.Newf(fatalerror.WorkerFailed, "worker %d: invoke: %w", worker, err)
	}

	if out.FunctionError != nil {
		return WorkerResult{}, fatalerror.Newf(fatalerror.WorkerFailed, "worker %d: %s error: %s", worker, aws.ToString(out.FunctionError), string(out.Payload))
	}

	result := WorkerResult{Worker: worker}
	if err := json.Unmarshal(out.Payload, &result.Result); err != nil {
		return WorkerResult{}, fatalerror.Newf(fatalerror.WorkerFailed, "worker %d: invalid response %q: %w", worker, string(out.Payload), err)
	}
	return result, nil
}

// WorkerArgs substitutes WorkerPlaceholder in args with the worker index.
func WorkerArgs(args []string, worker int) []string {
	if len(args) == 0 {
		return nil
	}
	id := strconv.Itoa(worker)
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = strings.ReplaceAll(arg, WorkerPlaceholder, id)
	}
	return out
}
