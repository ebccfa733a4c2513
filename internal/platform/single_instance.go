package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const raiseDialTimeout = time.Second

// InstanceGuard keeps the timer to one process per user. The first process
// listens on a localhost port; a later launch connects to it, which asks the
// running window to come forward, and then gives up.
type InstanceGuard struct {
	listener net.Listener
	raised   chan struct{}
}

// AcquireSingleInstance binds the port derived from appName. When the port is
// taken it pings the owner and returns ErrAlreadyRunning.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", instancePort(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if conn, dialErr := net.DialTimeout("tcp", address, raiseDialTimeout); dialErr == nil {
			_ = conn.Close()
			return nil, fmt.Errorf("%w: raised the existing window", ErrAlreadyRunning)
		}
		return nil, fmt.Errorf("%w (lock %s): %v", ErrAlreadyRunning, address, err)
	}

	guard := &InstanceGuard{listener: listener, raised: make(chan struct{}, 1)}
	go guard.accept(listener)
	return guard, nil
}

// Raised yields after later launches; bursts collapse into one value. The
// channel is closed by Release.
func (guard *InstanceGuard) Raised() <-chan struct{} {
	return guard.raised
}

// Release frees the lock. It is safe on a nil guard and when called twice.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}

func (guard *InstanceGuard) accept(listener net.Listener) {
	defer close(guard.raised)
	for {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		_ = conn.Close()
		select {
		case guard.raised <- struct{}{}:
		default:
		}
	}
}

func instancePort(appName string) int {
	const (
		firstPort = 20000
		lastPort  = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	return firstPort + int(hash.Sum32()%uint32(lastPort-firstPort+1))
}
