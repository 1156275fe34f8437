package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lonng/nano"
	"github.com/lonng/nano/component"
	"github.com/lonng/nano/pipeline"
	"github.com/lonng/nano/serialize/json"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	logger         = log.WithField("component", "game")
	defaultManager = NewManager()
)

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Startup 启动游戏服务器
func Startup() {
	rand.Seed(time.Now().Unix())

	applyConfig()

	comps := &component.Components{}
	comps.Register(defaultManager)

	pip := pipeline.New()
	if viper.GetBool("core.transmit-encrypt") {
		c := newCrypto(viper.GetString("core.crypto-key"))
		pip.Inbound().PushBack(c.inbound)
		pip.Outbound().PushBack(c.outbound)
	}

	heartbeat := viper.GetInt("core.heartbeat")
	if heartbeat < 5 {
		heartbeat = 5
	}

	listen := fmt.Sprintf("%s:%d", viper.GetString("game-server.host"), viper.GetInt("game-server.port"))
	logger.WithField("listen", listen).Info("游戏服务器启动")

	nano.Listen(listen,
		nano.WithPipeline(pip),
		nano.WithHeartbeatInterval(time.Duration(heartbeat)*time.Second),
		nano.WithLogger(log.WithField("component", "nano")),
		nano.WithSerializer(json.NewSerializer()),
		nano.WithComponents(comps),
	)
}

// applyConfig 用配置覆盖对局参数默认值
func applyConfig() {
	if v := viper.GetInt("core.initial-score"); v > 0 {
		initialScore = v
	}
	if v := viper.GetInt("core.max-rounds"); v > 0 {
		maxRounds = v
	}
	if v := viper.GetInt("core.turn-timeout"); v > 0 {
		turnTimeout = time.Duration(v) * time.Second
	}
	if v := viper.GetInt("core.call-timeout"); v > 0 {
		callTimeout = time.Duration(v) * time.Second
	}
	if v := viper.GetInt("core.chi-call-timeout"); v > 0 {
		chiCallTimeout = time.Duration(v) * time.Second
	}
	if v := viper.GetInt("core.fill-timeout"); v > 0 {
		fillTimeout = time.Duration(v) * time.Second
	}
	if v := viper.GetInt("core.round-interval"); v > 0 {
		roundInterval = time.Duration(v) * time.Second
	}
}
