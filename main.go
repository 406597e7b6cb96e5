package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/cloudflare/tableflip"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/omalloc/prox/conf"
	"github.com/omalloc/prox/contrib/config"
	"github.com/omalloc/prox/contrib/config/provider/file"
	"github.com/omalloc/prox/contrib/kratos"
	"github.com/omalloc/prox/contrib/log"
	"github.com/omalloc/prox/server"
)

var (
	id, _ = os.Hostname()

	// flagConf is the config flag.
	flagConf string = "config.yaml"
	// flagVerbose is the verbose flag.
	flagVerbose bool

	// Version is set at build time via -ldflags.
	Version string = "no-set"
	GitHash string = "no-set"
)

func init() {
	// init flag
	flag.StringVar(&flagConf, "c", "config.yaml", "config file path")
	flag.BoolVar(&flagVerbose, "v", false, "enable verbose log")

	// init logger
	log.SetLogger(log.With(log.DefaultLogger, "ts", log.Timestamp(time.RFC3339), "pid", os.Getpid()))

	// init prometheus
	prometheus.Unregister(collectors.NewGoCollector())
	registerer := prometheus.WrapRegistererWithPrefix("prox_", prometheus.DefaultRegisterer)
	registerer.MustRegister(collectors.NewGoCollector(collectors.WithGoCollectorMemStatsMetricsDisabled()))
}

func main() {
	flag.Parse()
	if !flagVerbose {
		log.SetLogger(log.NewFilter(log.GetLogger(), log.FilterLevel(log.LevelInfo)))
	}

	c := config.New[conf.Bootstrap](config.WithSource(file.NewSource(flagConf)))
	defer c.Close()

	bc := &conf.Bootstrap{}
	if err := c.Scan(bc); err != nil {
		log.Fatal(err)
	}
	if err := conf.ApplyDefaults(bc); err != nil {
		log.Fatal(err)
	}

	app, err := newApp(bc)
	if err != nil {
		log.Fatal(err)
	}

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}

func newApp(bc *conf.Bootstrap) (*kratos.App, error) {
	stopTimeout := 30 * time.Second

	// graceful upgrade
	flip, err := tableflip.New(tableflip.Options{
		PIDFile:        bc.PidFile,
		UpgradeTimeout: stopTimeout,
	})
	if err != nil {
		return nil, err
	}

	// graceful upgrade if we have not parent process
	// remove unix socket file.
	if !flip.HasParent() {
		if strings.HasSuffix(bc.Server.Addr, ".sock") {
			_ = os.Remove(bc.Server.Addr) // remove unix socket
		}
	}

	srv, err := server.NewServer(flip, bc)
	if err != nil {
		return nil, err
	}

	return kratos.New(
		kratos.ID(id),
		kratos.Name("prox"),
		kratos.Version(Version),
		kratos.StopTimeout(stopTimeout),
		kratos.Logger(log.GetLogger()),
		kratos.Server(srv),
	), nil
}
