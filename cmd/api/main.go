package main

// @title LINE Callback API
// @version 1.0
// @description Webhook receiver for the LINE Messaging API.

// @host localhost:5000
// @BasePath /
// @schemes http
import (
	protocol "line-callback/protocal"

	"github.com/sirupsen/logrus"
)

func main() {
	err := protocol.ServeHTTP()
	if err != nil {
		logrus.Fatalln(err)
	}
}
