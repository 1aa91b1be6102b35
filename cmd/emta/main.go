package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zsmatrix62/EMTradingAgent/pkg/agent"
	"github.com/zsmatrix62/EMTradingAgent/pkg/config"
	"github.com/zsmatrix62/EMTradingAgent/pkg/logger"
	"github.com/zsmatrix62/EMTradingAgent/pkg/shutdown"
)

func main() {
	var (
		configPath = flag.String("config", "", "配置文件路径 (yaml)")
		stockCode  = flag.String("stock", "", "启动后查询一次该证券的行情")
		showOrders = flag.Bool("orders", false, "登录后打印当日委托")
	)
	flag.Parse()

	// .env 不存在时忽略，环境变量照常生效
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputFile: cfg.LogFile,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	a := agent.New(cfg)

	sd := shutdown.NewManager()
	sd.OnShutdown(func(ctx context.Context) {
		if a.IsLoggedIn() {
			a.Logout(ctx)
		}
		_ = a.Close()
	})

	// 行情查询不要求登录
	if *stockCode != "" {
		if quote := a.GetMarketSnapshot(ctx, *stockCode); quote != nil {
			fmt.Printf("%s 最新: %.3f 买一: %.3f 卖一: %.3f\n",
				quote.Symbol, quote.LastPrice, quote.BidPrice, quote.AskPrice)
		}
	}

	if cfg.Username != "" && cfg.Password != "" {
		if !a.Login(ctx, "", "", cfg.SessionDuration) {
			logger.Error("登录失败，退出")
			shutdownWithTimeout(sd)
			os.Exit(1)
		}

		if info := a.GetAccountInfo(); info != nil {
			for _, acc := range a.Accounts() {
				if acc.AccountOverview != nil {
					fmt.Println(acc.AccountOverview)
				}
				if acc.Portfolio != nil {
					fmt.Println(acc.Portfolio)
				}
			}
		}

		if *showOrders {
			orders := a.QueryOrders(ctx)
			if len(orders) == 0 {
				fmt.Println("当日无委托")
			}
			for _, o := range orders {
				fmt.Println(o)
			}
		}
	} else {
		logger.Info("未配置账号密码，仅行情模式")
	}

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Printf("\n正在关闭...\n")
	shutdownWithTimeout(sd)
}

func shutdownWithTimeout(sd *shutdown.Manager) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sd.Shutdown(ctx)
}
