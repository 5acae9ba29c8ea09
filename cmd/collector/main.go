// Reads sensor lines from the probe's serial port and submits them to the
// backend. Depends on the backend API being online.
package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/jacobsa/go-serial/serial"

	"aquawatch/api"
	"aquawatch/collector"
	"aquawatch/config"
)

const connectionRetries = 5

func main() {
	cfg := config.LoadConfig()

	client := api.NewClient(cfg.APIURL, cfg.RequestTimeout)

	port, err := openSerial(cfg.SerialPort, cfg.SerialBaud)
	if err != nil {
		log.Fatalf("Failed to connect to sensor on %s: %v", cfg.SerialPort, err)
	}
	defer port.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	c := collector.NewCollector(client, cfg.MaxRetries, cfg.RetryDelay)
	if err := c.Run(ctx, port); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Collector failed: %v", err)
	}
	log.Println("Collector stopped")
}

// openSerial retries the serial connection a few times: the probe needs a
// moment after plug-in before the port accepts readers.
func openSerial(portName string, baud uint) (port io.ReadWriteCloser, err error) {
	options := serial.OpenOptions{
		PortName:        portName,
		BaudRate:        baud,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
	}

	for attempt := 1; attempt <= connectionRetries; attempt++ {
		port, err = serial.Open(options)
		if err == nil {
			log.Printf("Connected to sensor on %s", portName)
			return port, nil
		}
		log.Printf("Attempt %d/%d to connect to sensor failed: %v", attempt, connectionRetries, err)
		if attempt < connectionRetries {
			time.Sleep(2 * time.Second)
		}
	}
	return nil, err
}
