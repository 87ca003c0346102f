package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/base/log"
	"github.com/x-xyz/auctionapi/domain"
	auth_usecase "github.com/x-xyz/auctionapi/stores/auth/usecase"
)

// tokengen prints a bearer token for operators, signed with auth.jwtSecret
func main() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path of the yaml config file")
	userID := pflag.String("user", "", "subject of the token")
	role := pflag.String("role", string(domain.RoleViewer), "ADMIN, AUCTION_OWNER, CAPTAIN or VIEWER")
	pflag.Parse()

	viper.SetEnvPrefix("AUCTION")
	viper.BindEnv("auth.jwtSecret", "AUCTION_AUTH_JWTSECRET")
	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	if err := viper.ReadInConfig(); err != nil {
		log.Log().WithField("err", err).Warn("viper.ReadInConfig failed, using env only")
	}

	secret := viper.GetString("auth.jwtSecret")
	if secret == "" {
		log.Log().Error("auth.jwtSecret not configured")
		os.Exit(1)
	}

	token, err := auth_usecase.New(secret).SignToken(ctx.Background(), *userID, domain.Role(*role))
	if err != nil {
		log.Log().WithFields(log.Fields{"user": *userID, "role": *role, "err": err}).Error("SignToken failed")
		os.Exit(1)
	}
	fmt.Println(token)
}
