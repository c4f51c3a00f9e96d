package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"lambda-http-bridge/internal/config"
	"lambda-http-bridge/internal/echo"
	"lambda-http-bridge/pkg/bridge"
)

var br *bridge.Bridge

func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger := config.SetupLogging(cfg)
	br = bridge.NewBridge(cfg.Upload.Dir, logger)
}

func main() {
	awslambda.Start(br.APIGatewayHandler(echo.Handler))
}
