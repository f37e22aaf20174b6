package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"vehicle-market/client"
	"vehicle-market/domain"
	"vehicle-market/logger"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "Base URL of the vehicle-market API")
	principal := flag.Float64("principal", 0, "Loan amount (required)")
	rate := flag.Float64("rate", 0, "Annual interest rate in percent")
	tenure := flag.Int("tenure", 0, "Tenure in months (required)")
	timeout := flag.Duration("timeout", 5*time.Second, "Timeout for the remote call")
	flag.Parse()

	if *principal == 0 || *tenure == 0 {
		fmt.Println("Error: -principal and -tenure are required.")
		flag.Usage()
		os.Exit(1)
	}

	logger.Init(os.Getenv("LOG_LEVEL"))

	emiClient := client.NewEMIClient(*server, nil)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	terms := domain.LoanTerms{
		Principal:         *principal,
		AnnualRatePercent: *rate,
		TenureMonths:      *tenure,
	}
	quote, err := emiClient.Calculate(ctx, terms)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if quote.Warning != "" {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", quote.Warning)
	}

	output, err := json.MarshalIndent(map[string]any{
		"source": quote.Source,
		"quote":  domain.NewEMIResponse(terms, quote.Result),
	}, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(output))
}
