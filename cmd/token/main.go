// Command token mints a development access token for the API.
//
//	go run ./cmd/token -roles Sales,Admin
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"leadflow_backend/platform/config"
	"leadflow_backend/platform/httpkit"

	"github.com/google/uuid"
)

func main() {
	roles := flag.String("roles", "Sales", "comma-separated roles carried by the token")
	subject := flag.String("sub", "", "user id; random when empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	userID := uuid.New()
	if *subject != "" {
		userID, err = uuid.Parse(*subject)
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid -sub:", err)
			os.Exit(2)
		}
	}

	var roleList []string
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roleList = append(roleList, r)
		}
	}

	token, err := httpkit.SignAccessToken(cfg, userID, roleList, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to sign token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
