// Package daemon exposes one experiment over a unix-socket HTTP API so
// other tooling (or several terminals) can drive the same session. The
// datalog is positional, so exactly one mutation runs at a time.
package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/photolab/photolab/pkg/experiment"
	"github.com/photolab/photolab/pkg/physics"
)

type server struct {
	mu      sync.Mutex
	exp     *experiment.Experiment
	dataDir string
}

func setupRoutes(s *server) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/entries", s.listEntries)
	router.POST("/entries", s.addEntry)
	router.DELETE("/entries", s.clearEntries)
	router.GET("/entries/:index", s.getEntry)
	router.PUT("/entries/:index", s.updateEntry)
	router.DELETE("/entries/:index", s.removeEntry)
	router.GET("/energies", s.getEnergies)
	router.GET("/results", s.getResults)
	router.GET("/report", s.getReport)
	router.POST("/save", s.saveAll)
	router.GET("/version", getVersion)

	return router
}

// Run serves the experiment API on unixSocketPath until SIGINT/SIGTERM.
// Saved artifacts go under dataDir.
func Run(unixSocketPath, experimentName, dataDir string) error {
	s := &server{
		exp:     experiment.New(experimentName, physics.Default()),
		dataDir: dataDir,
	}
	router := setupRoutes(s)

	srv := &http.Server{
		Handler: router,
	}

	// Create the socket to listen on:
	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		return err
	}

	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	logrus.WithFields(logrus.Fields{
		"experiment": s.exp.Name(),
		"dataDir":    dataDir,
	}).Info("session started")

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	logrus.Info("exiting")
	return nil
}
