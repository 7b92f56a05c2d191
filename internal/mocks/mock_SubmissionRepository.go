package mocks

import (
	"context"

	"github.com/printologia/printshop/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// MockSubmissionRepository is a testify mock of ports.SubmissionRepository.
type MockSubmissionRepository struct {
	mock.Mock
}

type MockSubmissionRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockSubmissionRepository) EXPECT() *MockSubmissionRepository_Expecter {
	return &MockSubmissionRepository_Expecter{mock: &_m.Mock}
}

// Get provides a mock function with given fields: ctx, id
func (_m *MockSubmissionRepository) Get(ctx context.Context, id string) (*domain.Submission, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for Get")
	}

	var r0 *domain.Submission
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*domain.Submission, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *domain.Submission); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*domain.Submission)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockSubmissionRepository_Get_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Get'
type MockSubmissionRepository_Get_Call struct {
	*mock.Call
}

// Get is a helper method to define mock.On call
//   - ctx context.Context
//   - id string
func (_e *MockSubmissionRepository_Expecter) Get(ctx interface{}, id interface{}) *MockSubmissionRepository_Get_Call {
	return &MockSubmissionRepository_Get_Call{Call: _e.mock.On("Get", ctx, id)}
}

func (_c *MockSubmissionRepository_Get_Call) Run(run func(ctx context.Context, id string)) *MockSubmissionRepository_Get_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

func (_c *MockSubmissionRepository_Get_Call) Return(_a0 *domain.Submission, _a1 error) *MockSubmissionRepository_Get_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockSubmissionRepository_Get_Call) RunAndReturn(run func(context.Context, string) (*domain.Submission, error)) *MockSubmissionRepository_Get_Call {
	_c.Call.Return(run)
	return _c
}

// Save provides a mock function with given fields: ctx, submission
func (_m *MockSubmissionRepository) Save(ctx context.Context, submission *domain.Submission) error {
	ret := _m.Called(ctx, submission)

	if len(ret) == 0 {
		panic("no return value specified for Save")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.Submission) error); ok {
		r0 = rf(ctx, submission)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockSubmissionRepository_Save_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Save'
type MockSubmissionRepository_Save_Call struct {
	*mock.Call
}

// Save is a helper method to define mock.On call
//   - ctx context.Context
//   - submission *domain.Submission
func (_e *MockSubmissionRepository_Expecter) Save(ctx interface{}, submission interface{}) *MockSubmissionRepository_Save_Call {
	return &MockSubmissionRepository_Save_Call{Call: _e.mock.On("Save", ctx, submission)}
}

func (_c *MockSubmissionRepository_Save_Call) Run(run func(ctx context.Context, submission *domain.Submission)) *MockSubmissionRepository_Save_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*domain.Submission))
	})
	return _c
}

func (_c *MockSubmissionRepository_Save_Call) Return(_a0 error) *MockSubmissionRepository_Save_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockSubmissionRepository_Save_Call) RunAndReturn(run func(context.Context, *domain.Submission) error) *MockSubmissionRepository_Save_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockSubmissionRepository creates a new instance of MockSubmissionRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockSubmissionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSubmissionRepository {
	mock := &MockSubmissionRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
