// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package account

import (
	"fmt"

	hdwallet "github.com/ethereum-optimism/go-ethereum-hdwallet"
	ecrypt "github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"

	"github.com/iotexproject/go-pkgs/crypto"

	"github.com/namechain/namechain-core/namectl/output"
)

// DefaultRootDerivationPath for namechain accounts
const DefaultRootDerivationPath = "m/44'/304'"

// _accountNewCmd represents the account new command
var _accountNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new account with a fresh mnemonic",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		err := newAccount()
		return output.PrintError(err)
	},
}

type newAccountMessage struct {
	Mnemonic   string `json:"mnemonic"`
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey"`
}

func (m *newAccountMessage) String() string {
	if output.Format == "" {
		return fmt.Sprintf("mnemonic: %s\naddress: %s\nprivateKey: %s\n%s",
			m.Mnemonic, m.Address, m.PrivateKey,
			"Keep the mnemonic and the private key safe, they are printed only once.")
	}
	return output.FormatString(output.Result, m)
}

func newAccount() error {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return output.NewError(output.CryptoError, "failed to generate entropy", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return output.NewError(output.CryptoError, "failed to generate mnemonic", err)
	}
	addr, prvKey, err := DeriveKey(mnemonic, 0, 0, 0)
	if err != nil {
		return err
	}
	message := newAccountMessage{Mnemonic: mnemonic, Address: addr, PrivateKey: prvKey.HexString()}
	prvKey.Zero()
	fmt.Println(message.String())
	return nil
}

// DeriveKey derives a key from the mnemonic as "m/44'/304'/account'/change/index"
func DeriveKey(mnemonic string, account, change, index uint32) (string, crypto.PrivateKey, error) {
	wallet, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		return "", nil, output.NewError(output.InputError, "invalid mnemonic", err)
	}
	derivationPath := fmt.Sprintf("%s/%d'/%d/%d", DefaultRootDerivationPath, account, change, index)
	path := hdwallet.MustParseDerivationPath(derivationPath)
	walletAccount, err := wallet.Derive(path, false)
	if err != nil {
		return "", nil, output.NewError(output.InputError, "failed to get account by derive path", err)
	}
	private, err := wallet.PrivateKey(walletAccount)
	if err != nil {
		return "", nil, output.NewError(output.InputError, "failed to get private key", err)
	}
	prvKey, err := crypto.BytesToPrivateKey(ecrypt.FromECDSA(private))
	if err != nil {
		return "", nil, output.NewError(output.CryptoError, "failed to convert the private key bytes", err)
	}
	addr := prvKey.PublicKey().Address()
	if addr == nil {
		return "", nil, output.NewError(output.ConvertError, "failed to convert public key into address", nil)
	}
	return addr.String(), prvKey, nil
}
