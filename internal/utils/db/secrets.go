package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// secretGetter is the slice of the Secrets Manager client used here.
type secretGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

var newSecretsClient = func(ctx context.Context) (secretGetter, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

func retrieveCredentials(ctx context.Context, opts Options) (string, string, error) {
	if opts.Username != "" && opts.Password != "" {
		return opts.Username, opts.Password, nil
	}
	if opts.SecretID == "" {
		return "", "", errors.New("database credentials missing: set DB_USERNAME/DB_PASSWORD or DB_SECRET_ID")
	}

	secrets, err := newSecretsClient(ctx)
	if err != nil {
		return "", "", fmt.Errorf("load aws config: %w", err)
	}
	return fetchCredentials(ctx, secrets, opts.SecretID)
}

func fetchCredentials(ctx context.Context, secrets secretGetter, secretID string) (string, string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"),
	}

	result, err := secrets.GetSecretValue(ctx, input)
	if err != nil {
		return "", "", fmt.Errorf("get secret %s: %w", secretID, err)
	}
	if result.SecretString == nil {
		return "", "", fmt.Errorf("secret %s has no string value", secretID)
	}

	var secret Credentials
	if err = json.Unmarshal([]byte(*result.SecretString), &secret); err != nil {
		return "", "", fmt.Errorf("decode secret %s: %w", secretID, err)
	}

	return secret.Username, secret.Password, nil
}
