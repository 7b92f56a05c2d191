// Package mocks holds testify mocks of the ports interfaces in mockery's
// expecter layout, as configured in .mockery.yaml.
package mocks
