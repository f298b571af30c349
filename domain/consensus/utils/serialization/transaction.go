package serialization

import (
	"io"

	"github.com/globaltoken/globaltoken-core-wallet/domain/consensus/model/externalapi"
)

const (
	// MaxScriptSize is the largest script accepted while decoding
	MaxScriptSize = 10000

	// maxTxInOut caps the input and output counts of a decoded transaction.
	// Every input takes at least 41 bytes, so no legitimate coinbase of a
	// parent block comes close.
	maxTxInOut = 100000
)

// SerializeTransaction writes tx in the legacy, witness-free layout. The
// double-SHA256 of this serialization is the transaction id.
func SerializeTransaction(w io.Writer, tx *externalapi.DomainTransaction) error {
	err := WriteElement(w, tx.Version)
	if err != nil {
		return err
	}

	err = WriteVarInt(w, uint64(len(tx.Inputs)))
	if err != nil {
		return err
	}
	for _, input := range tx.Inputs {
		err = WriteElements(w, &input.PreviousOutpoint.TransactionID, input.PreviousOutpoint.Index)
		if err != nil {
			return err
		}
		err = WriteVarBytes(w, input.SignatureScript)
		if err != nil {
			return err
		}
		err = WriteElement(w, input.Sequence)
		if err != nil {
			return err
		}
	}

	err = WriteVarInt(w, uint64(len(tx.Outputs)))
	if err != nil {
		return err
	}
	for _, output := range tx.Outputs {
		err = WriteElement(w, output.Value)
		if err != nil {
			return err
		}
		err = WriteVarBytes(w, output.ScriptPublicKey)
		if err != nil {
			return err
		}
	}

	return WriteElement(w, tx.LockTime)
}

// DeserializeTransaction reads a transaction in the legacy, witness-free
// layout
func DeserializeTransaction(r io.Reader) (*externalapi.DomainTransaction, error) {
	tx := &externalapi.DomainTransaction{}
	err := ReadElement(r, &tx.Version)
	if err != nil {
		return nil, err
	}

	inputCount, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if inputCount > maxTxInOut {
		return nil, malformedf("too many transaction inputs: %d, max %d", inputCount, maxTxInOut)
	}
	tx.Inputs = make([]*externalapi.DomainTransactionInput, inputCount)
	for i := range tx.Inputs {
		input := &externalapi.DomainTransactionInput{}
		err = ReadElements(r, &input.PreviousOutpoint.TransactionID, &input.PreviousOutpoint.Index)
		if err != nil {
			return nil, err
		}
		input.SignatureScript, err = ReadVarBytes(r, MaxScriptSize, "signature script")
		if err != nil {
			return nil, err
		}
		err = ReadElement(r, &input.Sequence)
		if err != nil {
			return nil, err
		}
		tx.Inputs[i] = input
	}

	outputCount, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if outputCount > maxTxInOut {
		return nil, malformedf("too many transaction outputs: %d, max %d", outputCount, maxTxInOut)
	}
	tx.Outputs = make([]*externalapi.DomainTransactionOutput, outputCount)
	for i := range tx.Outputs {
		output := &externalapi.DomainTransactionOutput{}
		err = ReadElement(r, &output.Value)
		if err != nil {
			return nil, err
		}
		output.ScriptPublicKey, err = ReadVarBytes(r, MaxScriptSize, "script public key")
		if err != nil {
			return nil, err
		}
		tx.Outputs[i] = output
	}

	err = ReadElement(r, &tx.LockTime)
	if err != nil {
		return nil, err
	}
	return tx, nil
}
