package api

import "github.com/sarchlab/ising/fpga"

// Execute opens a session, runs a driver on it and closes the session. The
// session is closed whatever step the driver stopped at, and a failure to
// close it is logged without changing the result. The report is nil if the
// session could not be opened.
func Execute(
	sb fpga.SessionBuilder,
	db DriverBuilder,
	name string,
) (*RunReport, error) {
	var report *RunReport

	err := fpga.WithSession(sb, func(s *fpga.Session) error {
		var err error
		report, err = db.WithIO(s).Build(name).Run()
		return err
	})

	return report, err
}
