package services

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/spf13/afero"

	"github.com/deploymenttheory/go-applefile/internal/host"
)

// ServiceFactory provides a centralized way to create and share decode and inspect services
type ServiceFactory struct {
	fs             afero.Fs
	config         *host.Config
	logger         *slog.Logger
	decodeService  DecodeService
	inspectService InspectService
	mu             sync.Mutex
	initialized    bool
}

// NewServiceFactory creates a new service factory over fs with the given configuration
func NewServiceFactory(fs afero.Fs, config *host.Config, logger *slog.Logger) *ServiceFactory {
	return &ServiceFactory{
		fs:     fs,
		config: config,
		logger: logger,
	}
}

// WithConfig returns a new, uninitialized factory sharing fs and logger but using config
func (sf *ServiceFactory) WithConfig(config *host.Config) *ServiceFactory {
	return NewServiceFactory(sf.fs, config, sf.logger)
}

// Fs returns the file system every service reads and writes through
func (sf *ServiceFactory) Fs() afero.Fs {
	return sf.fs
}

// Logger returns the logger handed to every service
func (sf *ServiceFactory) Logger() *slog.Logger {
	if sf.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return sf.logger
}

// Initialize initializes all services with their dependencies
func (sf *ServiceFactory) Initialize() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	return sf.initialize()
}

func (sf *ServiceFactory) initialize() error {
	if sf.initialized {
		return nil
	}

	if sf.config == nil {
		return fmt.Errorf("%w: no configuration", ErrServiceNotAvailable)
	}

	decodeSvc, err := NewDecodeService(sf.fs, sf.config, sf.logger)
	if err != nil {
		return fmt.Errorf("failed to create decode service: %w", err)
	}

	sf.decodeService = decodeSvc
	sf.inspectService = NewInspectService(sf.fs)
	sf.initialized = true
	return nil
}

// DecodeService returns the decode service instance
func (sf *ServiceFactory) DecodeService() (DecodeService, error) {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	if err := sf.initialize(); err != nil {
		return nil, err
	}
	return sf.decodeService, nil
}

// InspectService returns the inspect service instance
func (sf *ServiceFactory) InspectService() (InspectService, error) {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	if err := sf.initialize(); err != nil {
		return nil, err
	}
	return sf.inspectService, nil
}

// Shutdown releases all services
func (sf *ServiceFactory) Shutdown() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	sf.decodeService = nil
	sf.inspectService = nil
	sf.initialized = false
	return nil
}

// IsInitialized returns whether the factory has been initialized
func (sf *ServiceFactory) IsInitialized() bool {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return sf.initialized
}
