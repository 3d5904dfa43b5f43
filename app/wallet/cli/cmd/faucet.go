package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mockchain/mockchain/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var faucetCmd = &cobra.Command{
	Use:   "faucet",
	Short: "Request test funds for this wallet",
	Run:   faucetRun,
}

func init() {
	rootCmd.AddCommand(faucetCmd)
	faucetCmd.Flags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
}

func faucetRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	accountID := database.PublicKeyToAccountID(privateKey.PublicKey)

	data, err := json.Marshal(map[string]string{"account": string(accountID)})
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/faucet", url), "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	fmt.Println("status:", resp.Status)
}
