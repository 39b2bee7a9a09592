package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	orderreaderv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/order-reader/v1"
	orderbookv1 "github.com/muhammadchandra19/exchange/services/matching-service/internal/domain/orderbook/v1"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

func main() {
	var (
		brokers     = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic       = flag.String("topic", "orders", "Kafka topic name")
		symbol      = flag.String("symbol", "BBCA", "Instrument symbol")
		file        = flag.String("file", "", "JSON array of command envelopes (optional, generates commands if not provided)")
		delay       = flag.Duration("delay", 100*time.Millisecond, "Delay between sending commands")
		count       = flag.Int("count", 1000, "Number of commands to generate")
		basePrice   = flag.String("base-price", "9000", "Base price for generated orders")
		tickSize    = flag.String("tick-size", "25", "Tick size of the instrument")
		spreadTicks = flag.Int64("spread-ticks", 8, "Ticks away from the base price orders may rest")
		clients     = flag.Int("clients", 5, "Number of distinct client ids")
		seed        = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
		open        = flag.Bool("open", true, "Send pre_open and open before generated orders")
	)
	flag.Parse()

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
	defer writer.Close()

	var payloads [][]byte
	if *file != "" {
		payloads, err = loadFile(*file)
		if err != nil {
			log.Error(err, logger.NewField("file", *file))
			os.Exit(1)
		}
		log.Info("Loaded commands from file", logger.NewField("file", *file), logger.NewField("count", len(payloads)))
	} else {
		base, err := decimal.NewFromString(*basePrice)
		if err != nil {
			log.Error(err, logger.NewField("flag", "base-price"))
			os.Exit(1)
		}
		tick, err := decimal.NewFromString(*tickSize)
		if err != nil || !tick.IsPositive() {
			log.Warn("Invalid tick size, using 1", logger.NewField("tickSize", *tickSize))
			tick = decimal.NewFromInt(1)
		}

		g := newGenerator(*seed, *symbol, base, tick, *spreadTicks, *clients)
		var actions []orderbookv1.Action
		if *open {
			actions = append(actions, g.sessionOpen()...)
		}
		for i := 0; i < *count; i++ {
			actions = append(actions, g.next())
		}

		for _, action := range actions {
			buf, err := orderreaderv1.EncodeCommand(action)
			if err != nil {
				log.Error(err, logger.NewField("action", action.Type()))
				os.Exit(1)
			}
			payloads = append(payloads, buf)
		}
		log.Info("Generated commands", logger.NewField("count", len(payloads)), logger.NewField("seed", *seed))
	}

	log.Info("Sending commands to Kafka",
		logger.NewField("brokers", *brokers),
		logger.NewField("topic", *topic),
		logger.NewField("delay", delay.String()),
	)

	ctx := context.Background()
	sent := 0
	counts := map[orderbookv1.ActionType]int{}
	for i, payload := range payloads {
		msg := kafka.Message{
			Key:   []byte(*symbol),
			Value: payload,
			Time:  time.Now(),
		}

		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Error(err, logger.NewField("command", i+1))
			continue
		}
		sent++
		if action, err := orderreaderv1.DecodeCommand(payload); err == nil {
			counts[action.Type()]++
		}

		if (i+1)%100 == 0 || i == len(payloads)-1 {
			log.Info("Progress", logger.NewField("sent", sent), logger.NewField("total", len(payloads)))
		}

		if i < len(payloads)-1 {
			time.Sleep(*delay)
		}
	}

	log.Info("Summary",
		logger.NewField("sent", sent),
		logger.NewField("create_order", counts[orderbookv1.ActionTypeCreateOrder]),
		logger.NewField("update_order", counts[orderbookv1.ActionTypeUpdateOrder]),
		logger.NewField("cancel_order", counts[orderbookv1.ActionTypeCancelOrder]),
		logger.NewField("update_status", counts[orderbookv1.ActionTypeUpdateStatus]),
	)
}

// loadFile reads a JSON array of command envelopes and checks each decodes.
func loadFile(path string) ([][]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	payloads := make([][]byte, 0, len(raw))
	for _, r := range raw {
		if _, err := orderreaderv1.DecodeCommand(r); err != nil {
			return nil, err
		}
		payloads = append(payloads, []byte(r))
	}
	return payloads, nil
}
