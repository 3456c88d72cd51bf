// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package deploy

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// FunctionAPI is the part of the Lambda control plane the installer drives.
// *lambda.Client implements it.
type FunctionAPI interface {
	CreateFunction(ctx context.Context, params *lambda.CreateFunctionInput, optFns ...func(*lambda.Options)) (*lambda.CreateFunctionOutput, error)
	DeleteFunction(ctx context.Context, params *lambda.DeleteFunctionInput, optFns ...func(*lambda.Options)) (*lambda.DeleteFunctionOutput, error)
	UpdateFunctionEventInvokeConfig(ctx context.Context, params *lambda.UpdateFunctionEventInvokeConfigInput, optFns ...func(*lambda.Options)) (*lambda.UpdateFunctionEventInvokeConfigOutput, error)
	PutFunctionEventInvokeConfig(ctx context.Context, params *lambda.PutFunctionEventInvokeConfigInput, optFns ...func(*lambda.Options)) (*lambda.PutFunctionEventInvokeConfigOutput, error)
}

var _ FunctionAPI = (*lambda.Client)(nil)
