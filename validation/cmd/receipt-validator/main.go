package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pitchside-io/teamauction/auctionapi"
	"github.com/pitchside-io/teamauction/validation"
)

func main() {
	var (
		receiptPath   = flag.String("receipt", "", "Path to base64 receipt file (required)")
		publicKeyPath = flag.String("public-key", "", "Path to public key PEM file (required)")
		outputFormat  = flag.String("format", "text", "Output format: text or json")
		help          = flag.Bool("help", false, "Show usage information")
	)

	flag.Parse()

	if *help || *receiptPath == "" || *publicKeyPath == "" {
		showUsage()
		if *receiptPath == "" || *publicKeyPath == "" {
			os.Exit(1)
		}
		os.Exit(0)
	}

	receiptB64, err := readReceipt(*receiptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading receipt: %v\n", err)
		os.Exit(2)
	}

	publicKeyPEM, err := os.ReadFile(*publicKeyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading public key: %v\n", err)
		os.Exit(2)
	}

	claims, err := validation.VerifySaleReceiptPEM(receiptB64, string(publicKeyPEM))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Receipt verification FAILED: %v\n", err)
		os.Exit(1)
	}

	if *outputFormat == "json" {
		data, err := json.MarshalIndent(claims, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	} else {
		fmt.Println("Sale Receipt Validator")
		fmt.Println("======================")
		fmt.Println("Signature:   VALID")
		fmt.Println("Sale hash:   VALID")
		fmt.Printf("Tournament:  %s\n", claims.TournamentID)
		fmt.Printf("Player:      %s\n", claims.PlayerID)
		fmt.Printf("Team:        %s\n", claims.TeamID)
		fmt.Printf("Price:       %d\n", claims.Price)
		fmt.Printf("Signed at:   %s\n", claims.Timestamp)
	}
}

func showUsage() {
	fmt.Println("Sale Receipt Validator")
	fmt.Println()
	fmt.Println("Verifies COSE-signed sale receipts emitted by the auction daemon.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  receipt-validator --receipt <path> --public-key <pem> [options]")
	fmt.Println()
	fmt.Println("Required Flags:")
	fmt.Println("  --receipt <path>      Path to a file holding the base64 receipt")
	fmt.Println("  --public-key <path>   Path to the daemon's public key PEM file")
	fmt.Println()
	fmt.Println("Optional Flags:")
	fmt.Println("  --format <text|json>  Output format (default: text)")
	fmt.Println("  --help                Show this help message")
	fmt.Println()
	fmt.Println("Exit Codes:")
	fmt.Println("  0 - Receipt valid")
	fmt.Println("  1 - Receipt invalid")
	fmt.Println("  2 - Invalid input or runtime error")
}

func readReceipt(path string) (auctionapi.ReceiptCOSEBase64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return auctionapi.ReceiptCOSEBase64(strings.TrimSpace(string(data))), nil
}
