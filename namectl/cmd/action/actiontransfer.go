// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package action

import (
	"encoding/hex"
	"math/big"

	"github.com/iotexproject/iotex-address/address"
	"github.com/spf13/cobra"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/namectl/client"
	"github.com/namechain/namechain-core/namectl/output"
	"github.com/namechain/namechain-core/namectl/util"
)

// _actionTransferCmd represents the action transfer command
var _actionTransferCmd = &cobra.Command{
	Use:   "transfer (RECIPIENT_ADDRESS) AMOUNT [DATA]",
	Short: "Transfer tokens to the recipient",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		err := transfer(args)
		return output.PrintError(err)
	},
}

func init() {
	RegisterWriteCommand(_actionTransferCmd)
}

func transfer(args []string) error {
	recipient, err := address.FromString(args[0])
	if err != nil {
		return output.NewError(output.AddressError, "invalid recipient address", err)
	}
	amount, ok := new(big.Int).SetString(args[1], 10)
	if !ok || amount.Sign() < 0 {
		return output.NewError(output.ConvertError, "invalid amount "+args[1], nil)
	}
	var payload []byte
	if len(args) == 3 {
		payload, err = hex.DecodeString(util.TrimHexPrefix(args[2]))
		if err != nil {
			return output.NewError(output.ConvertError, "failed to decode data", err)
		}
	}
	prvKey, err := PrivateKey()
	if err != nil {
		return err
	}
	cli := client.Dial()
	chainID, err := ChainID(cli)
	if err != nil {
		return err
	}
	nonce, err := Nonce(cli, prvKey.PublicKey().Address())
	if err != nil {
		return err
	}
	gasPrice, err := GasPrice()
	if err != nil {
		return err
	}
	selp, err := action.SignedTransfer(recipient.String(), prvKey, nonce, amount, payload,
		GasLimit(), gasPrice, action.WithChainID(chainID))
	prvKey.Zero()
	if err != nil {
		return output.NewError(output.CryptoError, "failed to sign action", err)
	}
	return Send(cli, selp)
}
