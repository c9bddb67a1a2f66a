package fpga

import "log/slog"

// WithSession opens a session, runs fn on it and closes it. A close failure
// is logged and does not replace the result of fn.
func WithSession(b SessionBuilder, fn func(s *Session) error) error {
	s, err := b.Open()
	if err != nil {
		return err
	}

	defer func() {
		if cerr := s.Close(); cerr != nil {
			s.logger.Error("Failure while detaching from the fpga",
				slog.Any("err", cerr))
		}
	}()

	return fn(s)
}

// WriteRegister attaches for a single write, reads the register back and
// detaches. It returns the value read back.
func WriteRegister(b SessionBuilder, addr uint64, value uint32) (uint32, error) {
	var readBack uint32

	err := WithSession(b, func(s *Session) error {
		var err error
		readBack, err = s.WriteVerify(addr, value)
		return err
	})

	return readBack, err
}

// ReadRegister attaches for a single read and detaches.
func ReadRegister(b SessionBuilder, addr uint64) (uint32, error) {
	var value uint32

	err := WithSession(b, func(s *Session) error {
		var err error
		value, err = s.Peek(addr)
		return err
	})

	return value, err
}
