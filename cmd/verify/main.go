package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"go-teachain-ws/internal/config"
	"go-teachain-ws/internal/ledger/evm"
	"go-teachain-ws/internal/lifecycle"
	"go-teachain-ws/pkg/logger"
)

// verify is a read-only provenance lookup from the terminal: the same data
// the QR-scan endpoint serves, without running the API.
func main() {
	productID := flag.Uint64("id", 0, "product ID to look up")
	flag.Parse()

	if *productID == 0 {
		fmt.Fprintln(os.Stderr, "usage: verify -id <product-id>")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// No signing key needed for reads
	cfg.Ledger.PrivateKeyHex = ""
	gw, err := evm.Dial(cfg.Ledger, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot reach ledger")
	}

	controller := lifecycle.NewController(gw, nil, nil, log)
	provenance, err := controller.FetchProductDetails(context.Background(), *productID)
	if err != nil {
		log.Fatal().Err(err).Uint64("product_id", *productID).Msg("lookup failed")
	}

	p := provenance.Product
	fmt.Printf("Product #%d  %s (%s)\n", p.ProductID, p.Name, p.ProductType)
	fmt.Printf("  Batch:        #%d %s\n", provenance.Batch.BatchID, provenance.Batch.Name)
	fmt.Printf("  Stage:        %s\n", p.Stage)
	fmt.Printf("  Manufactured: %s\n", p.ManufacturedDate.Format("2006-01-02"))
	fmt.Printf("  Expires:      %s\n", p.ExpiryDate.Format("2006-01-02"))
	fmt.Printf("  Price:        %d\n", p.Price)

	fmt.Println("History:")
	for _, s := range provenance.Stages {
		fmt.Printf("  %-13s %s  in %s  out %s  %q\n",
			s.Stage, s.User.Name, s.EntryTime.Format("2006-01-02 15:04"), s.ExitLabel(), s.Remark)
	}
}
