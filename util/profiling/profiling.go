package profiling

import (
	"net"
	"net/http"
	"net/http/pprof"

	"github.com/kaspanet/setsum/infrastructure/logger"
	"github.com/kaspanet/setsum/util/panics"
	"github.com/pkg/errors"
)

// Start binds a pprof server to the given port and serves it in the
// background. It returns the address the server listens on.
func Start(port string, log *logger.Logger) (net.Addr, error) {
	listenAddr := net.JoinHostPort("", port)
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't start the profile server on %s", listenAddr)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/", http.RedirectHandler("/debug/pprof/", http.StatusSeeOther))

	spawn := panics.GoroutineWrapperFunc(log)
	spawn("profiling.Start", func() {
		log.Infof("Profile server listening on %s", listener.Addr())
		log.Errorf("Profile server stopped: %s", http.Serve(listener, mux))
	})
	return listener.Addr(), nil
}
