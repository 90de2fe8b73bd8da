package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/rabbitshop/bookcase/internal/book"
	"github.com/rabbitshop/bookcase/internal/codec"
	"github.com/rabbitshop/bookcase/internal/config"
	"github.com/rabbitshop/bookcase/internal/fault"
	"github.com/rabbitshop/bookcase/internal/logging"
	"github.com/rabbitshop/bookcase/internal/server"
	"github.com/rabbitshop/bookcase/internal/server/routes"
	"github.com/rabbitshop/bookcase/internal/version"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	showVersion bool
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	loadDotEnv(".env", ".env.local")
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := logging.InitLogger(cfg.Global)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	// 启动顺序：配置 → codec → registry → 槽位 → translator → Fiber server。
	// registry 在任何请求之前构建完毕，之后只读。
	active, err := codec.Build(cfg.Codec.Format, codec.Options{
		MediaType: cfg.Codec.MediaTypeValue(),
		Delimiter: cfg.Codec.DelimiterRune(),
	})
	if err != nil {
		fmt.Fprintf(stdErr, "构建 codec 失败: %v\n", err)
		return 1
	}

	registry, err := codec.NewRegistry(codec.Binding{Type: codec.BookCollection, Codec: active})
	if err != nil {
		fmt.Fprintf(stdErr, "构建 codec 注册表失败: %v\n", err)
		return 1
	}

	for _, binding := range registry.List() {
		fields := logging.CodecFields(string(binding.Type), cfg.Codec.Format, binding.Codec.MediaType().String())
		fields["action"] = "codec_bind"
		logger.WithFields(fields).Debug("codec 已绑定")
	}

	if opts.checkOnly {
		fields := logging.BaseFields("check_config", opts.configPath)
		fields["codec"] = cfg.Codec.Format
		fields["media_type"] = active.MediaType().String()
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	translator, err := fault.NewTranslator(fault.TranslatorOptions{
		Logger:         logger,
		StatusResolver: server.FiberStatus,
		ProblemBaseURL: cfg.Global.ProblemBaseURL,
	})
	if err != nil {
		fmt.Fprintf(stdErr, "初始化故障翻译器失败: %v\n", err)
		return 1
	}

	fields := logging.BaseFields("startup", opts.configPath)
	fields["listen_port"] = cfg.Global.ListenPort
	fields["codec"] = cfg.Codec.Format
	fields["version"] = version.Full()
	logger.WithFields(fields).Info("配置加载完成")

	if err := startHTTPServer(cfg, registry, book.NewShelf(), translator, logger); err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务启动失败: %v\n", err)
		return 1
	}
	return 0
}

// parseCLIFlags 解析 CLI 参数，并结合环境变量计算最终的配置路径。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("bookcase", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag string
		checkOnly  bool
		showVer    bool
	)

	fs.StringVar(&configFlag, "config", "", "配置文件路径（默认 ./config.toml，可被 BOOKCASE_CONFIG 覆盖）")
	fs.BoolVar(&checkOnly, "check-config", false, "仅校验配置后退出")
	fs.BoolVar(&showVer, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}

	path := os.Getenv("BOOKCASE_CONFIG")
	if configFlag != "" {
		path = configFlag
	}
	if path == "" {
		path = "config.toml"
	}

	return cliOptions{
		configPath:  path,
		checkOnly:   checkOnly,
		showVersion: showVer,
	}, nil
}

// loadDotEnv 从 .env 文件补充环境变量（如 BOOKCASE_CONFIG），不覆盖已有取值，缺失文件忽略。
func loadDotEnv(paths ...string) {
	for _, path := range paths {
		_ = godotenv.Load(path)
	}
}

func startHTTPServer(cfg *config.Config, registry *codec.Registry, shelf *book.Shelf, translator *fault.Translator, logger *logrus.Logger) error {
	port := cfg.Global.ListenPort
	app, err := server.NewApp(server.AppOptions{
		Logger:       logger,
		Registry:     registry,
		Shelf:        shelf,
		Translator:   translator,
		BodyLimit:    cfg.Global.BodyLimit,
		ReadTimeout:  cfg.Global.ReadTimeout.DurationValue(),
		WriteTimeout: cfg.Global.WriteTimeout.DurationValue(),
	})
	if err != nil {
		return err
	}
	routes.RegisterDiagnosticRoutes(app, registry)

	logger.WithFields(logrus.Fields{
		"action": "listen",
		"port":   port,
	}).Info("Fiber 服务启动")

	return app.Listen(fmt.Sprintf(":%d", port))
}
