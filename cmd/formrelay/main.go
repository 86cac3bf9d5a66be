package main

import (
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/clearlane/formrelay/airtable"
	"github.com/clearlane/formrelay/config"
	"github.com/clearlane/formrelay/relay"
)

func main() {
	logger := log.New(os.Stderr, "formrelay: ", log.LstdFlags)

	cfg := config.FromEnv()

	if param := os.Getenv("AIRTABLE_API_KEY_PARAM"); param != "" && cfg.APIKey == "" {
		if err := cfg.LoadAPIKeyFromSSM(param, os.Getenv("AWS_REGION")); err != nil {
			logger.Printf("failed loading api key from ssm: %v", err)
		}
	}

	if cfg.APIKey == "" {
		logger.Print("AIRTABLE_API_KEY is not set, submissions will be rejected")
	}

	client := airtable.NewClient(cfg.APIURL, cfg.BaseID, cfg.APIKey)
	handler := relay.NewHandler(client, config.TableName, logger)

	router, err := handler.Router()
	if err != nil {
		logger.Fatalf("failed building router: %v", err)
	}

	lambda.Start(router.Route)
}
