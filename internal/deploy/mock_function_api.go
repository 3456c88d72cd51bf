// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package deploy

import (
	context "context"

	lambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	mock "github.com/stretchr/testify/mock"
)

type MockFunctionAPI struct {
	mock.Mock
}

func (_m *MockFunctionAPI) CreateFunction(ctx context.Context, params *lambda.CreateFunctionInput, optFns ...func(*lambda.Options)) (*lambda.CreateFunctionOutput, error) {
	ret := _m.Called(ctx, params)

	if len(ret) == 0 {
		panic("no return value specified for CreateFunction")
	}

	var r0 *lambda.CreateFunctionOutput
	if rf, ok := ret.Get(0).(func(context.Context, *lambda.CreateFunctionInput) *lambda.CreateFunctionOutput); ok {
		r0 = rf(ctx, params)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*lambda.CreateFunctionOutput)
	}

	return r0, ret.Error(1)
}

func (_m *MockFunctionAPI) DeleteFunction(ctx context.Context, params *lambda.DeleteFunctionInput, optFns ...func(*lambda.Options)) (*lambda.DeleteFunctionOutput, error) {
	ret := _m.Called(ctx, params)

	if len(ret) == 0 {
		panic("no return value specified for DeleteFunction")
	}

	var r0 *lambda.DeleteFunctionOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*lambda.DeleteFunctionOutput)
	}

	return r0, ret.Error(1)
}

func (_m *MockFunctionAPI) UpdateFunctionEventInvokeConfig(ctx context.Context, params *lambda.UpdateFunctionEventInvokeConfigInput, optFns ...func(*lambda.Options)) (*lambda.UpdateFunctionEventInvokeConfigOutput, error) {
	ret := _m.Called(ctx, params)

	if len(ret) == 0 {
		panic("no return value specified for UpdateFunctionEventInvokeConfig")
	}

	var r0 *lambda.UpdateFunctionEventInvokeConfigOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*lambda.UpdateFunctionEventInvokeConfigOutput)
	}

	return r0, ret.Error(1)
}

func (_m *MockFunctionAPI) PutFunctionEventInvokeConfig(ctx context.Context, params *lambda.PutFunctionEventInvokeConfigInput, optFns ...func(*lambda.Options)) (*lambda.PutFunctionEventInvokeConfigOutput, error) {
	ret := _m.Called(ctx, params)

	if len(ret) == 0 {
		panic("no return value specified for PutFunctionEventInvokeConfig")
	}

	var r0 *lambda.PutFunctionEventInvokeConfigOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*lambda.PutFunctionEventInvokeConfigOutput)
	}

	return r0, ret.Error(1)
}

// NewMockFunctionAPI creates a new instance of MockFunctionAPI. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockFunctionAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFunctionAPI {
	mock := &MockFunctionAPI{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
