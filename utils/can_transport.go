package utils

import (
	"context"
	"fmt"
	"net"

	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"
)

// BusWriter sends frames onto one of several logical buses.
type BusWriter interface {
	WriteFrame(ctx context.Context, bus int, frame can.Frame) error
	Close() error
}

// BusReader receives frames from one bus.
type BusReader interface {
	ReadFrame(ctx context.Context) (can.Frame, error)
	Close() error
}

// SocketCANBusWriter maps logical bus indices onto SocketCAN interfaces.
type SocketCANBusWriter struct {
	conns []net.Conn
	txs   []*socketcan.Transmitter
}

// NewSocketCANBusWriter dials one interface per logical bus, in index order.
func NewSocketCANBusWriter(ctx context.Context, ifaces ...string) (*SocketCANBusWriter, error) {
	w := &SocketCANBusWriter{}
	for _, iface := range ifaces {
		conn, err := socketcan.DialContext(ctx, "can", iface)
		if err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("socketcan dial %s: %w", iface, err)
		}
		w.conns = append(w.conns, conn)
		w.txs = append(w.txs, socketcan.NewTransmitter(conn))
	}
	return w, nil
}

func (w *SocketCANBusWriter) WriteFrame(ctx context.Context, bus int, frame can.Frame) error {
	if bus < 0 || bus >= len(w.txs) {
		return fmt.Errorf("no interface configured for bus %d", bus)
	}
	return w.txs[bus].TransmitFrame(ctx, frame)
}

func (w *SocketCANBusWriter) Close() error {
	var firstErr error
	for _, conn := range w.conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SocketCANBusReader reads frames from a single interface.
type SocketCANBusReader struct {
	conn net.Conn
	recv *socketcan.Receiver
}

func NewSocketCANBusReader(ctx context.Context, iface string) (*SocketCANBusReader, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, fmt.Errorf("socketcan dial %s: %w", iface, err)
	}
	return &SocketCANBusReader{conn: conn, recv: socketcan.NewReceiver(conn)}, nil
}

// ReadFrame blocks until a frame arrives or the context ends.
func (r *SocketCANBusReader) ReadFrame(ctx context.Context) (can.Frame, error) {
	frameChan := make(chan can.Frame, 1)
	errChan := make(chan error, 1)

	go func() {
		if r.recv.Receive() {
			frameChan <- r.recv.Frame()
		} else {
			errChan <- fmt.Errorf("receive failed")
		}
	}()

	select {
	case <-ctx.Done():
		return can.Frame{}, ctx.Err()
	case frame := <-frameChan:
		return frame, nil
	case err := <-errChan:
		return can.Frame{}, err
	}
}

func (r *SocketCANBusReader) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
