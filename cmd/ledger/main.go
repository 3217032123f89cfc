// Job - журнал начислений
// Чтение событий из Kafka -> запись в PostgreSQL
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	config "github.com/glkeru/loyalty/daily/internal/config"
	db "github.com/glkeru/loyalty/daily/internal/db"
	kafka "github.com/glkeru/loyalty/daily/internal/external/kafka"
	interf "github.com/glkeru/loyalty/daily/internal/interfaces"
	jobs "github.com/glkeru/loyalty/daily/internal/jobs"
	"go.uber.org/zap"
)

func main() {
	// config
	cfg, err := config.LoadLedger()
	if err != nil {
		panic(err)
	}

	// log
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// kafka
	reader, err := kafka.NewReader(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroup)
	if err != nil {
		panic(err)
	}
	defer reader.CloseReader()

	// database
	var storage interf.LedgerStorage
	ledger, err := db.NewLedgerDB(ctx, cfg.LedgerDSN, logger)
	if err != nil {
		panic(err)
	}
	defer ledger.Close()
	storage = ledger

	logger.Info("ledger started", zap.String("topic", cfg.KafkaTopic))
	consumer := jobs.NewLedgerConsumer(reader, storage, logger)
	err = consumer.Run(ctx)
	if err != nil {
		logger.Error("ledger stopped with error", zap.Error(err))
	}
	logger.Info("ledger stopped")
}
