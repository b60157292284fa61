package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"farmkv"
	"farmkv/logger"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/redcon"
)

var (
	errClientIsNil = errors.New("ERR client conn is nil")
)

var (
	defaultHost          = "127.0.0.1"
	defaultPort          = "5200"
	defaultEnvFile       = ".env"
	defaultShardsNum int = 16
)

type Server struct {
	db     *farmkv.DB
	ser    *redcon.Server
	signal chan os.Signal
	opts   ServerOptions
	mu     *sync.RWMutex
	start  time.Time
}

type ServerOptions struct {
	host     string
	port     string
	shards   int
	hash     string
	logLevel string
	envfile  string
}

var serverOpts ServerOptions

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the RESP server",
	Long: "Run the RESP server\n\n" +
		"Flags can be overridden by FARMKV_* environment variables, also read from --envfile.",
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f := serveCmd.Flags()
	f.StringVar(&serverOpts.host, "host", defaultHost, "server host")
	f.StringVar(&serverOpts.port, "port", defaultPort, "server port")
	f.IntVar(&serverOpts.shards, "shards", defaultShardsNum, "the number of index shards")
	f.StringVar(&serverOpts.hash, "hash", "farm", "shard routing hash: farm, murmur3 or mem")
	f.StringVar(&serverOpts.logLevel, "log-level", "info", "log level")
	f.StringVar(&serverOpts.envfile, "envfile", defaultEnvFile, "env file with FARMKV_* overrides")
}

// envOverrides maps flag names to environment variables.
var envOverrides = map[string]string{
	"host":      "FARMKV_HOST",
	"port":      "FARMKV_PORT",
	"shards":    "FARMKV_SHARDS",
	"hash":      "FARMKV_HASH",
	"log-level": "FARMKV_LOG_LEVEL",
}

// applyEnv loads the env file and applies FARMKV_* values to every option
// whose flag was not given explicitly.
func applyEnv(opts *ServerOptions, changed func(name string) bool) error {
	err := godotenv.Load(opts.envfile)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "load envfile %s", opts.envfile)
	}
	if os.IsNotExist(err) && opts.envfile != defaultEnvFile {
		return errors.Errorf("envfile '%v' was set, but the file was not found", opts.envfile)
	}

	for flagName, env := range envOverrides {
		val, ok := os.LookupEnv(env)
		if !ok || changed(flagName) {
			continue
		}
		switch flagName {
		case "host":
			opts.host = val
		case "port":
			opts.port = val
		case "shards":
			n, err := strconv.Atoi(val)
			if err != nil {
				return errors.Wrapf(err, "parse %s", env)
			}
			opts.shards = n
		case "hash":
			opts.hash = val
		case "log-level":
			opts.logLevel = val
		}
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	opts := serverOpts
	if err := applyEnv(&opts, func(name string) bool { return cmd.Flags().Changed(name) }); err != nil {
		return err
	}
	if err := logger.SetLevel(opts.logLevel); err != nil {
		return errors.Wrap(err, "set log level")
	}

	svr, err := newServer(opts)
	if err != nil {
		return err
	}

	// 获取信号
	signal.Notify(svr.signal, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go svr.listen()
	<-svr.signal
	svr.stop()
	return nil
}

func newServer(opts ServerOptions) (*Server, error) {
	dbOpts := farmkv.DefaultOptions()
	dbOpts.Shards = opts.shards
	dbOpts.HashFunc = opts.hash
	db, err := farmkv.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}
	logger.Infof("open db with %d shards routed by %s", opts.shards, opts.hash)

	svr := &Server{
		db:     db,
		signal: make(chan os.Signal, 1),
		opts:   opts,
		mu:     new(sync.RWMutex),
		start:  time.Now(),
	}
	addr := opts.host + ":" + opts.port
	svr.ser = redcon.NewServerNetwork("tcp", addr, execClientCommand, svr.redconAccept,
		func(conn redcon.Conn, err error) {
			if err != nil {
				logger.Debugf("conn %s closed: %v", conn.RemoteAddr(), err)
			}
		})
	return svr, nil
}

func (svr *Server) listen() {
	logger.Infof("farmkv server is running on %s:%s, ready to accept connections", svr.opts.host, svr.opts.port)
	if err := svr.ser.ListenAndServe(); err != nil {
		logger.Fatalf("listen and serve err, fail to start. %v", err)
		return
	}
}

func (svr *Server) stop() {
	if err := svr.db.Close(); err != nil {
		logger.Errorf("close db err: %v", err)
	}
	if err := svr.ser.Close(); err != nil {
		logger.Errorf("close server err: %v", err)
	}
	logger.Info("farmkv is ready to exit, bye bye...")
}

// 处理客户端连接请求
func (svr *Server) redconAccept(conn redcon.Conn) bool {
	cli := new(Client)
	cli.svr = svr
	svr.mu.RLock()
	cli.db = svr.db
	svr.mu.RUnlock()
	conn.SetContext(cli)
	return true
}

func (svr *Server) info() string {
	return fmt.Sprintf("# Server\r\nuptime_in_seconds:%d\r\nshards:%d\r\nhash_func:%s\r\n# Keyspace\r\nkeys:%d\r\n",
		int64(time.Since(svr.start).Seconds()), svr.opts.shards, svr.opts.hash, svr.db.Count())
}
