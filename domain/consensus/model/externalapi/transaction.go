package externalapi

import (
	"fmt"
)

// DomainTransaction represents a parent chain transaction in the legacy,
// witness-free layout. AuxPow only ever carries coinbase transactions.
type DomainTransaction struct {
	Version  int32
	Inputs   []*DomainTransactionInput
	Outputs  []*DomainTransactionOutput
	LockTime uint32
}

// DomainTransactionInput represents a transaction input
type DomainTransactionInput struct {
	PreviousOutpoint DomainOutpoint
	SignatureScript  []byte
	Sequence         uint32
}

// DomainOutpoint represents a transaction outpoint
type DomainOutpoint struct {
	TransactionID DomainHash
	Index         uint32
}

// String stringifies an outpoint.
func (op DomainOutpoint) String() string {
	return fmt.Sprintf("%s:%d", op.TransactionID, op.Index)
}

// DomainTransactionOutput represents a transaction output
type DomainTransactionOutput struct {
	Value           int64
	ScriptPublicKey []byte
}

// Clone returns a clone of DomainTransaction
func (tx *DomainTransaction) Clone() *DomainTransaction {
	inputsClone := make([]*DomainTransactionInput, len(tx.Inputs))
	for i, input := range tx.Inputs {
		scriptClone := make([]byte, len(input.SignatureScript))
		copy(scriptClone, input.SignatureScript)
		inputsClone[i] = &DomainTransactionInput{
			PreviousOutpoint: input.PreviousOutpoint,
			SignatureScript:  scriptClone,
			Sequence:         input.Sequence,
		}
	}

	outputsClone := make([]*DomainTransactionOutput, len(tx.Outputs))
	for i, output := range tx.Outputs {
		scriptClone := make([]byte, len(output.ScriptPublicKey))
		copy(scriptClone, output.ScriptPublicKey)
		outputsClone[i] = &DomainTransactionOutput{
			Value:           output.Value,
			ScriptPublicKey: scriptClone,
		}
	}

	return &DomainTransaction{
		Version:  tx.Version,
		Inputs:   inputsClone,
		Outputs:  outputsClone,
		LockTime: tx.LockTime,
	}
}
