// Package config sources the relay configuration from the environment once
// at process start, with an optional SSM Parameter Store lookup for the
// Airtable credential.
package config

import (
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/pkg/errors"
)

const (
	// TableName is the Airtable table that receives form submissions.
	TableName = "Form Submissions"

	// DefaultBaseID is the Airtable base used when AIRTABLE_BASE_ID is
	// not set.
	DefaultBaseID = "appXKWnzbFbRyhsSB"
)

// Config holds the process configuration for the relay.
//
// APIKey may legitimately be empty here: a missing credential is surfaced
// per request as a 500 by the relay pipeline rather than preventing startup.
type Config struct {
	APIKey string
	BaseID string
	APIURL string

	svcFunc func(client.ConfigProvider) ssmiface.SSMAPI
}

// FromEnv reads the configuration from the environment, applying defaults
// for everything but the credential.
func FromEnv() *Config {
	cfg := &Config{
		APIKey: os.Getenv("AIRTABLE_API_KEY"),
		BaseID: os.Getenv("AIRTABLE_BASE_ID"),
		APIURL: os.Getenv("AIRTABLE_API_URL"),
	}

	if cfg.BaseID == "" {
		cfg.BaseID = DefaultBaseID
	}

	return cfg
}

// svc is used internally to assist stubs on ssm for testing
func (cfg *Config) svc(p client.ConfigProvider) ssmiface.SSMAPI {
	if cfg.svcFunc != nil {
		return cfg.svcFunc(p)
	}

	return ssm.New(p)
}

// LoadAPIKeyFromSSM fetches the Airtable credential from the named SSM
// parameter (decrypted) and stores it on the config. Intended for cold
// start, before any request is served.
func (cfg *Config) LoadAPIKeyFromSSM(param string, region string) error {
	if param == "" {
		return errors.New("parameter name is required")
	}

	s, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})

	if err != nil {
		return errors.Wrap(err, "failed getting session")
	}

	svc := cfg.svc(s)

	out, err := svc.GetParameter(&ssm.GetParameterInput{
		Name:           aws.String(param),
		WithDecryption: aws.Bool(true),
	})

	if err != nil {
		return errors.Wrapf(err, "failed getting parameter %v", param)
	}

	cfg.APIKey = aws.StringValue(out.Parameter.Value)
	return nil
}
