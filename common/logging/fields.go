package logging

const (
	// FieldError can be used instead of Err(err) if you have only the error message string.
	FieldError = "err"

	FieldComponent = "component"
	FieldRunId     = "runId"

	FieldDuration = "duration"
	FieldUrl      = "url"
	FieldStage    = "stage"

	FieldRpcMethod    = "rpcMethod"
	FieldRpcTransport = "rpcTransport"

	FieldObjectId      = "objectId"
	FieldObjectVersion = "objectVersion"
	FieldObjectDigest  = "objectDigest"
	FieldOwnerKind     = "ownerKind"
	FieldSharedVersion = "initialSharedVersion"

	FieldSender    = "sender"
	FieldRecipient = "recipient"
	FieldCoinType  = "coinType"
	FieldAmount    = "amount"

	FieldTxDigest  = "txDigest"
	FieldGasBudget = "gasBudget"
	FieldGasPrice  = "gasPrice"
	FieldCommands  = "commands"
	FieldInputs    = "inputs"
)
