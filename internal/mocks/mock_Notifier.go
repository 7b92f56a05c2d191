package mocks

import (
	"context"

	"github.com/printologia/printshop/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// MockNotifier is a testify mock of ports.Notifier.
type MockNotifier struct {
	mock.Mock
}

type MockNotifier_Expecter struct {
	mock *mock.Mock
}

func (_m *MockNotifier) EXPECT() *MockNotifier_Expecter {
	return &MockNotifier_Expecter{mock: &_m.Mock}
}

// Send provides a mock function with given fields: ctx, msg
func (_m *MockNotifier) Send(ctx context.Context, msg domain.Notification) (string, error) {
	ret := _m.Called(ctx, msg)

	if len(ret) == 0 {
		panic("no return value specified for Send")
	}

	var r0 string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.Notification) (string, error)); ok {
		return rf(ctx, msg)
	}
	if rf, ok := ret.Get(0).(func(context.Context, domain.Notification) string); ok {
		r0 = rf(ctx, msg)
	} else {
		r0 = ret.Get(0).(string)
	}

	if rf, ok := ret.Get(1).(func(context.Context, domain.Notification) error); ok {
		r1 = rf(ctx, msg)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockNotifier_Send_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Send'
type MockNotifier_Send_Call struct {
	*mock.Call
}

// Send is a helper method to define mock.On call
//   - ctx context.Context
//   - msg domain.Notification
func (_e *MockNotifier_Expecter) Send(ctx interface{}, msg interface{}) *MockNotifier_Send_Call {
	return &MockNotifier_Send_Call{Call: _e.mock.On("Send", ctx, msg)}
}

func (_c *MockNotifier_Send_Call) Run(run func(ctx context.Context, msg domain.Notification)) *MockNotifier_Send_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(domain.Notification))
	})
	return _c
}

func (_c *MockNotifier_Send_Call) Return(_a0 string, _a1 error) *MockNotifier_Send_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockNotifier_Send_Call) RunAndReturn(run func(context.Context, domain.Notification) (string, error)) *MockNotifier_Send_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockNotifier creates a new instance of MockNotifier. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockNotifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNotifier {
	mock := &MockNotifier{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
