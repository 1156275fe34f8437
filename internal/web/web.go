package web

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/lonng/nex"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/tonpu/riichiserver/internal/game"
	"github.com/tonpu/riichiserver/pkg/algoutil"
	"github.com/tonpu/riichiserver/protocol"
)

var logger = log.WithField("component", "http")

func version() (*protocol.VersionResponse, error) {
	return &protocol.VersionResponse{
		Version: viper.GetString("update.version"),
	}, nil
}

func pongHandler() (string, error) {
	return "pong", nil
}

func onlineHandler() (*protocol.OnlineStatsResponse, error) {
	desks, players := game.Stats()
	return &protocol.OnlineStatsResponse{
		DeskCount:   desks,
		PlayerCount: players,
	}, nil
}

func logRequest(ctx context.Context, r *http.Request) (context.Context, error) {
	if uri := r.RequestURI; uri != "/ping" {
		logger.Debugf("Method=%s, RemoteAddr=%s URL=%s", r.Method, r.RemoteAddr, uri)
	}
	return ctx, nil
}

func makeStatsService() http.Handler {
	router := mux.NewRouter()
	router.Handle("/v1/stats/online", nex.Handler(onlineHandler)).Methods("GET") //同时在线人、桌数
	return router
}

func startupService() http.Handler {
	srv := http.NewServeMux()

	nex.Before(logRequest)
	srv.Handle("/v1/stats/", makeStatsService())
	srv.Handle("/v1/version", nex.Handler(version))
	srv.Handle("/ping", nex.Handler(pongHandler))

	return algoutil.AccessControl(algoutil.OptionControl(srv))
}

func Startup() {
	var (
		addr      = viper.GetString("webserver.addr")
		cert      = viper.GetString("webserver.certificates.cert")
		key       = viper.GetString("webserver.certificates.key")
		enableSSL = viper.GetBool("webserver.enable_ssl")
	)

	logger.Infof("Web service addr: %s(enable ssl: %v)", addr, enableSSL)
	go func() {
		// http service
		srv := startupService()
		if enableSSL {
			log.Fatal(http.ListenAndServeTLS(addr, cert, key, srv))
		} else {
			log.Fatal(http.ListenAndServe(addr, srv))
		}
	}()

	sg := make(chan os.Signal, 1)
	signal.Notify(sg, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGKILL)
	// stop server
	select {
	case s := <-sg:
		log.Infof("got signal: %s", s.String())
	}
}
