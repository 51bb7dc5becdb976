package main

import (
	"flag"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/talent-plan/txnkv/kv/config"
	"github.com/talent-plan/txnkv/kv/regionstore"
	"github.com/talent-plan/txnkv/kv/server"
	"github.com/talent-plan/txnkv/kv/server/api"
	"github.com/talent-plan/txnkv/kv/server/resp"
	"github.com/talent-plan/txnkv/kv/storage"
	"github.com/talent-plan/txnkv/kv/storage/bolt_storage"
	"github.com/talent-plan/txnkv/kv/storage/leveldb_storage"
	"github.com/talent-plan/txnkv/kv/storage/standalone_storage"
	"github.com/talent-plan/txnkv/log"
	"github.com/talent-plan/txnkv/proto/pkg/txnkvpb"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
)

var (
	configPath = flag.String("config", "", "config file path")
	storeAddr  = flag.String("addr", "", "store address")
	statusAddr = flag.String("status-addr", "", "status address")
	redisAddr  = flag.String("redis-addr", "", "RESP gateway address, disabled when empty")
	engine     = flag.String("engine", "", "storage engine: mem, badger, leveldb or bolt")
	dbPath     = flag.String("path", "", "directory to store the data in")
	logLevel   = flag.String("L", "", "log level: debug, info, warn, error, fatal")
)

var gitHash = "None"

func main() {
	flag.Parse()
	conf := loadConfig()
	log.Init(&conf.Log)
	defer log.Sync()
	if conf.Server.MaxProcs > 0 {
		runtime.GOMAXPROCS(conf.Server.MaxProcs)
	}
	log.Info("gitHash:", gitHash)
	log.Infof("conf %+v", conf)

	rs := regionstore.NewRegionStorage(newEngine(conf), conf)
	if err := rs.Start(); err != nil {
		log.Fatal(err)
	}
	txnServer := server.NewServer(rs)

	var alivePolicy = keepalive.EnforcementPolicy{
		MinTime:             conf.Server.GrpcKeepaliveMinTime.Duration,
		PermitWithoutStream: true,
	}
	grpcServer := grpc.NewServer(
		grpc.KeepaliveEnforcementPolicy(alivePolicy),
		grpc.InitialWindowSize(int32(conf.Server.GrpcInitialWindowSize)),
		grpc.InitialConnWindowSize(int32(conf.Server.GrpcInitialWindowSize)),
		grpc.MaxRecvMsgSize(int(conf.Server.GrpcMaxRecvMsgSize)),
		grpc.UnaryInterceptor(grpc_prometheus.UnaryServerInterceptor),
		grpc.StreamInterceptor(grpc_prometheus.StreamServerInterceptor),
	)
	txnkvpb.RegisterTxnKvServer(grpcServer, txnServer)
	grpc_prometheus.Register(grpcServer)

	l, err := net.Listen("tcp", conf.StoreAddr)
	if err != nil {
		log.Fatal(err)
	}

	var gateway *resp.Gateway
	if conf.RedisAddr != "" {
		gateway = resp.NewGateway(conf.RedisAddr, txnServer, rs)
		if err := gateway.Start(); err != nil {
			log.Fatal(err)
		}
	}
	if conf.StatusAddr != "" {
		go func() {
			log.Infof("status listening on %v", conf.StatusAddr)
			mux := http.NewServeMux()
			mux.Handle("/", api.NewHandler(rs, conf))
			mux.Handle("/debug/", http.DefaultServeMux)
			if err := http.ListenAndServe(conf.StatusAddr, mux); err != nil {
				log.Fatal(err)
			}
		}()
	}
	handleSignal(grpcServer)

	log.Infof("txnkv listening on %v", l.Addr())
	if err := grpcServer.Serve(l); err != nil {
		log.Fatal(err)
	}
	if gateway != nil {
		if err := gateway.Stop(); err != nil {
			log.With(zap.Error(err)).Warn("stop resp gateway")
		}
	}
	if err := rs.Stop(); err != nil {
		log.Fatal(err)
	}
	log.Info("Server stopped.")
}

func loadConfig() *config.Config {
	conf := config.NewDefaultConfig()
	if *configPath != "" {
		if err := conf.LoadFile(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *storeAddr != "" {
		conf.StoreAddr = *storeAddr
	}
	if *statusAddr != "" {
		conf.StatusAddr = *statusAddr
	}
	if *redisAddr != "" {
		conf.RedisAddr = *redisAddr
	}
	if *engine != "" {
		conf.Engine = *engine
	}
	if *dbPath != "" {
		conf.DBPath = *dbPath
	}
	if *logLevel != "" {
		conf.Log.Level = *logLevel
	}
	if err := conf.Validate(); err != nil {
		log.Fatal(err)
	}
	return conf
}

func newEngine(conf *config.Config) storage.Storage {
	switch conf.Engine {
	case config.EngineMem:
		return storage.NewMemStorage()
	case config.EngineLevelDB:
		return leveldb_storage.NewLevelDBStorage(conf)
	case config.EngineBolt:
		return bolt_storage.NewBoltStorage(conf)
	default:
		return standalone_storage.NewStandAloneStorage(conf)
	}
}

func handleSignal(grpcServer *grpc.Server) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		sig := <-sigCh
		log.Infof("Got signal [%s] to exit.", sig)
		grpcServer.GracefulStop()
	}()
}
