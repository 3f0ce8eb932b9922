// Package timezone resolves IANA timezone names for coordinates.
package timezone

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ringsaturn/tzf"
)

var ErrNoTimezone = errors.New("could not determine timezone")

// Service provides timezone lookup functionality
type Service interface {
	GetTimezone(latitude, longitude float64) (string, error)
}

// service implements timezone lookup using tzf
type service struct {
	finder tzf.F
}

var (
	instance *service
	initErr  error
	once     sync.Once
)

// NewService creates or returns the shared timezone service. The finder
// keeps its polygon data in memory, so it is built once per process.
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{finder: finder}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// GetTimezone returns names like "Europe/Paris" for the given coordinates
func (s *service) GetTimezone(latitude, longitude float64) (string, error) {
	name := s.finder.GetTimezoneName(longitude, latitude)
	if name == "" {
		return "", fmt.Errorf("%w: lat=%f, lon=%f", ErrNoTimezone, latitude, longitude)
	}
	return name, nil
}
