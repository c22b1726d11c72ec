// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package action provides the commands that build, sign and submit actions.
package action

import (
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/iotexproject/go-pkgs/crypto"
	"github.com/iotexproject/iotex-address/address"
	"github.com/spf13/cobra"

	"github.com/namechain/namechain-core/action"
	"github.com/namechain/namechain-core/namectl/client"
	"github.com/namechain/namechain-core/namectl/flag"
	"github.com/namechain/namechain-core/namectl/output"
	"github.com/namechain/namechain-core/namectl/util"
)

const _defaultGasLimit = uint64(20000)

// Flags shared by every command that submits an action
var (
	_gasLimitFlag = flag.NewUint64VarP("gas-limit", "l", _defaultGasLimit, "set gas limit")
	_gasPriceFlag = flag.NewStringVarP("gas-price", "p", "1", "set gas price, in base units")
	_nonceFlag    = flag.NewUint64VarP("nonce", "n", 0, "set nonce (default using pending nonce)")
	_keyFlag      = flag.NewStringVarP("key", "k", "", "hex private key of the signer (default $NAMECHAIN_PRIVATE_KEY, prompts when both are unset)")
	_waitFlag     = flag.BoolVarP("wait", "w", false, "wait until the receipt lands in a block")
)

// ActionCmd represents the action command
var ActionCmd = &cobra.Command{
	Use:   "action",
	Short: "Manage actions of the chain",
}

func init() {
	ActionCmd.AddCommand(_actionTransferCmd)
	ActionCmd.AddCommand(_actionReceiptCmd)
}

// RegisterWriteCommand registers the signing flags on a command that submits
// actions
func RegisterWriteCommand(cmd *cobra.Command) {
	_gasLimitFlag.RegisterCommand(cmd)
	_gasPriceFlag.RegisterCommand(cmd)
	_nonceFlag.RegisterCommand(cmd)
	_keyFlag.RegisterCommand(cmd)
	_waitFlag.RegisterCommand(cmd)
}

// RegisterKeyCommand registers only the key flag, for commands that resolve
// the signer without submitting anything
func RegisterKeyCommand(cmd *cobra.Command) {
	_keyFlag.RegisterCommand(cmd)
}

// PrivateKey resolves the signing key from the key flag, the environment or
// an interactive prompt, in that order
func PrivateKey() (crypto.PrivateKey, error) {
	raw := _keyFlag.Value().(string)
	if raw == "" {
		raw = os.Getenv("NAMECHAIN_PRIVATE_KEY")
	}
	if raw == "" {
		output.PrintQuery("Enter private key of the signer:")
		var err error
		raw, err = util.ReadSecretFromStdin()
		if err != nil {
			return nil, output.NewError(output.InputError, "failed to get private key", err)
		}
	}
	prvKey, err := crypto.HexStringToPrivateKey(util.TrimHexPrefix(raw))
	if err != nil {
		return nil, output.NewError(output.CryptoError, "failed to decode the private key", err)
	}
	return prvKey, nil
}

// ChainID fetches the chain id actions must be signed against
func ChainID(cli *client.Client) (uint32, error) {
	chainMeta, err := cli.ChainMeta()
	if err != nil {
		return 0, output.NewError(output.APIError, "failed to get chain meta", err)
	}
	return chainMeta.ChainID, nil
}

// Nonce returns the nonce flag when set, the signer's pending nonce otherwise
func Nonce(cli *client.Client, signer address.Address) (uint64, error) {
	if nonce := _nonceFlag.Value().(uint64); nonce != 0 {
		return nonce, nil
	}
	accountMeta, err := cli.Account(signer.String())
	if err != nil {
		return 0, output.NewError(output.APIError, "failed to get account meta", err)
	}
	return accountMeta.PendingNonce, nil
}

// GasLimit returns the gas limit flag
func GasLimit() uint64 {
	return _gasLimitFlag.Value().(uint64)
}

// GasPrice parses the gas price flag
func GasPrice() (*big.Int, error) {
	raw := _gasPriceFlag.Value().(string)
	price, ok := new(big.Int).SetString(raw, 10)
	if !ok || price.Sign() < 0 {
		return nil, output.NewError(output.ConvertError, "invalid gas price "+raw, nil)
	}
	return price, nil
}

type sendMessage struct {
	Info    string          `json:"info"`
	TxHash  string          `json:"txHash"`
	Receipt *client.Receipt `json:"receipt,omitempty"`
}

func (m *sendMessage) String() string {
	if output.Format == "" {
		if m.Receipt != nil {
			return fmt.Sprintf("%s\n%s", m.Info, FormatReceipt(m.Receipt))
		}
		return fmt.Sprintf("%s\nWait for several seconds and query this action by hash: %s", m.Info, m.TxHash)
	}
	return output.FormatString(output.Result, m)
}

// Send submits the sealed action, optionally waiting for its receipt
func Send(cli *client.Client, selp *action.SealedEnvelope) error {
	txHash, err := cli.SendAction(selp)
	if err != nil {
		return output.NewError(output.APIError, "failed to send action", err)
	}
	message := sendMessage{Info: "Action has been sent to blockchain.", TxHash: txHash}
	if _waitFlag.Value().(bool) {
		receipt, err := WaitReceipt(cli, txHash)
		if err != nil {
			return err
		}
		message.Info = "Action has been written on blockchain."
		message.Receipt = receipt
	}
	fmt.Println(message.String())
	return nil
}

// WaitReceipt polls for the receipt until the action lands in a block
func WaitReceipt(cli *client.Client, txHash string) (*client.Receipt, error) {
	var receipt *client.Receipt
	err := backoff.Retry(func() error {
		var err error
		receipt, err = cli.Receipt(txHash)
		return err
	}, backoff.WithMaxRetries(backoff.NewConstantBackOff(5*time.Second), 60))
	if err != nil {
		return nil, output.NewError(output.APIError, "failed to get the receipt", err)
	}
	return receipt, nil
}

// FormatReceipt renders a receipt the way the hash lookup prints it
func FormatReceipt(receipt *client.Receipt) string {
	result := fmt.Sprintf("status: %d %s\n", receipt.StatusCode, receipt.Status) +
		fmt.Sprintf("actHash: %s\n", receipt.ActionHash) +
		fmt.Sprintf("blkHeight: %d\n", receipt.BlockHeight) +
		fmt.Sprintf("gasConsumed: %d\n", receipt.GasConsumed)
	if len(receipt.ContractAddress) != 0 {
		result += fmt.Sprintf("contractAddress: %s\n", receipt.ContractAddress)
	}
	if len(receipt.Logs) > 0 {
		result += "logs:<\n"
		for _, l := range receipt.Logs {
			result += "  <\n" +
				fmt.Sprintf("    address: %s\n", l.Address) +
				"    topics:<\n"
			for _, topic := range l.Topics {
				result += fmt.Sprintf("      %s\n", topic)
			}
			result += "    >\n"
			if len(l.Data) > 0 {
				result += fmt.Sprintf("    data: %s\n", l.Data)
			}
			result += "  >\n"
		}
		result += ">\n"
	}
	for _, l := range receipt.TransactionLogs {
		result += fmt.Sprintf("%s: %s moved from %s to %s\n", l.Type, l.Amount, l.Sender, l.Recipient)
	}
	return result
}
