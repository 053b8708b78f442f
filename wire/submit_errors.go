package wire

import "encoding/json"

// SubmitErrorKind enumerates the closed catalog of SubmitTx error
// variants reported by the bridge. This is deliberately a flat
// enumeration with a dedicated Unknown tail rather than one Go type
// per variant: the catalog is closed on the wire, but forward
// compatibility with newer bridge versions is handled by
// SubmitErrUnknown.
type SubmitErrorKind string

const (
	SubmitErrAddressAttributesTooLarge           SubmitErrorKind = "addressAttributesTooLarge"
	SubmitErrAlreadyDelegating                   SubmitErrorKind = "alreadyDelegating"
	SubmitErrBadInputs                           SubmitErrorKind = "badInputs"
	SubmitErrCollateralHasNonAdaAssets           SubmitErrorKind = "collateralHasNonAdaAssets"
	SubmitErrCollateralIsScript                   SubmitErrorKind = "collateralIsScript"
	SubmitErrCollateralTooSmall                   SubmitErrorKind = "collateralTooSmall"
	SubmitErrCollectErrors                        SubmitErrorKind = "collectErrors"
	SubmitErrDelegateNotRegistered                 SubmitErrorKind = "delegateNotRegistered"
	SubmitErrDuplicateGenesisVrf                   SubmitErrorKind = "duplicateGenesisVrf"
	SubmitErrEraMismatch                           SubmitErrorKind = "eraMismatch"
	SubmitErrExecutionUnitsTooLarge                SubmitErrorKind = "executionUnitsTooLarge"
	SubmitErrExpiredUtxo                           SubmitErrorKind = "expiredUtxo"
	SubmitErrExtraDataMismatch                     SubmitErrorKind = "extraDataMismatch"
	SubmitErrExtraRedeemers                        SubmitErrorKind = "extraRedeemers"
	SubmitErrExtraScriptWitnesses                  SubmitErrorKind = "extraScriptWitnesses"
	SubmitErrFeeTooSmall                           SubmitErrorKind = "feeTooSmall"
	SubmitErrInsufficientFundsForMir               SubmitErrorKind = "insufficientFundsForMir"
	SubmitErrInsufficientGenesisSignatures          SubmitErrorKind = "insufficientGenesisSignatures"
	SubmitErrInvalidMetadata                       SubmitErrorKind = "invalidMetadata"
	SubmitErrInvalidWitnesses                      SubmitErrorKind = "invalidWitnesses"
	SubmitErrMalformedReferenceScripts              SubmitErrorKind = "malformedReferenceScripts"
	SubmitErrMalformedScriptWitnesses               SubmitErrorKind = "malformedScriptWitnesses"
	SubmitErrMirNegativeTransfer                    SubmitErrorKind = "mirNegativeTransfer"
	SubmitErrMirNegativeTransferNotCurrentlyAllowed SubmitErrorKind = "mirNegativeTransferNotCurrentlyAllowed"
	SubmitErrMirProducesNegativeUpdate              SubmitErrorKind = "mirProducesNegativeUpdate"
	SubmitErrMirTransferNotCurrentlyAllowed         SubmitErrorKind = "mirTransferNotCurrentlyAllowed"
	SubmitErrMissingAtLeastOneInputUtxo             SubmitErrorKind = "missingAtLeastOneInputUtxo"
	SubmitErrMissingCollateralInputs                SubmitErrorKind = "missingCollateralInputs"
	SubmitErrMissingDatumHashesForInputs             SubmitErrorKind = "missingDatumHashesForInputs"
	SubmitErrMissingRequiredDatums                  SubmitErrorKind = "missingRequiredDatums"
	SubmitErrMissingRequiredRedeemers                SubmitErrorKind = "missingRequiredRedeemers"
	SubmitErrMissingRequiredSignatures              SubmitErrorKind = "missingRequiredSignatures"
	SubmitErrMissingScriptWitnesses                 SubmitErrorKind = "missingScriptWitnesses"
	SubmitErrMissingTxMetadata                      SubmitErrorKind = "missingTxMetadata"
	SubmitErrMissingTxMetadataHash                  SubmitErrorKind = "missingTxMetadataHash"
	SubmitErrMissingVkWitnesses                     SubmitErrorKind = "missingVkWitnesses"
	SubmitErrNetworkMismatch                        SubmitErrorKind = "networkMismatch"
	SubmitErrNonGenesisVoters                       SubmitErrorKind = "nonGenesisVoters"
	SubmitErrOutputTooSmall                         SubmitErrorKind = "outputTooSmall"
	SubmitErrOutsideForecast                        SubmitErrorKind = "outsideForecast"
	SubmitErrOutsideOfValidityInterval              SubmitErrorKind = "outsideOfValidityInterval"
	SubmitErrPoolCostTooSmall                       SubmitErrorKind = "poolCostTooSmall"
	SubmitErrPoolMetadataHashTooBig                 SubmitErrorKind = "poolMetadataHashTooBig"
	SubmitErrProtocolVersionCannotFollow             SubmitErrorKind = "protocolVersionCannotFollow"
	SubmitErrRewardAccountNotEmpty                  SubmitErrorKind = "rewardAccountNotEmpty"
	SubmitErrRewardAccountNotExisting               SubmitErrorKind = "rewardAccountNotExisting"
	SubmitErrScriptWitnessNotValidating             SubmitErrorKind = "scriptWitnessNotValidating"
	SubmitErrStakeKeyAlreadyRegistered               SubmitErrorKind = "stakeKeyAlreadyRegistered"
	SubmitErrStakeKeyNotRegistered                  SubmitErrorKind = "stakeKeyNotRegistered"
	SubmitErrStakePoolNotRegistered                 SubmitErrorKind = "stakePoolNotRegistered"
	SubmitErrTooLateForMir                          SubmitErrorKind = "tooLateForMir"
	SubmitErrTooManyAssetsInOutput                  SubmitErrorKind = "tooManyAssetsInOutput"
	SubmitErrTooManyCollateralInputs                SubmitErrorKind = "tooManyCollateralInputs"
	SubmitErrTotalCollateralMismatch                SubmitErrorKind = "totalCollateralMismatch"
	SubmitErrTriesToForgeAda                        SubmitErrorKind = "triesToForgeAda"
	SubmitErrTxMetadataHashMismatch                 SubmitErrorKind = "txMetadataHashMismatch"
	SubmitErrTxTooLarge                             SubmitErrorKind = "txTooLarge"
	SubmitErrUnknownGenesisKey                      SubmitErrorKind = "unknownGenesisKey"
	SubmitErrUnknownOrIncompleteWithdrawals          SubmitErrorKind = "unknownOrIncompleteWithdrawals"
	SubmitErrUnspendableDatums                      SubmitErrorKind = "unspendableDatums"
	SubmitErrUnspendableScriptInputs                SubmitErrorKind = "unspendableScriptInputs"
	SubmitErrUpdateWrongEpoch                       SubmitErrorKind = "updateWrongEpoch"
	SubmitErrValidationTagMismatch                  SubmitErrorKind = "validationTagMismatch"
	SubmitErrValueNotConserved                      SubmitErrorKind = "valueNotConserved"
	SubmitErrWrongCertificateType                   SubmitErrorKind = "wrongCertificateType"
	SubmitErrWrongPoolCertificate                   SubmitErrorKind = "wrongPoolCertificate"
	SubmitErrWrongRetirementEpoch                   SubmitErrorKind = "wrongRetirementEpoch"

	// SubmitErrUnknown never appears on the wire; it marks a discriminant
	// key this catalog does not recognize (forward compatibility tail).
	SubmitErrUnknown SubmitErrorKind = ""
)

var knownSubmitErrorKinds = map[string]SubmitErrorKind{
	string(SubmitErrAddressAttributesTooLarge):           SubmitErrAddressAttributesTooLarge,
	string(SubmitErrAlreadyDelegating):                   SubmitErrAlreadyDelegating,
	string(SubmitErrBadInputs):                           SubmitErrBadInputs,
	string(SubmitErrCollateralHasNonAdaAssets):           SubmitErrCollateralHasNonAdaAssets,
	string(SubmitErrCollateralIsScript):                  SubmitErrCollateralIsScript,
	string(SubmitErrCollateralTooSmall):                  SubmitErrCollateralTooSmall,
	string(SubmitErrCollectErrors):                       SubmitErrCollectErrors,
	string(SubmitErrDelegateNotRegistered):                SubmitErrDelegateNotRegistered,
	string(SubmitErrDuplicateGenesisVrf):                  SubmitErrDuplicateGenesisVrf,
	string(SubmitErrEraMismatch):                          SubmitErrEraMismatch,
	string(SubmitErrExecutionUnitsTooLarge):               SubmitErrExecutionUnitsTooLarge,
	string(SubmitErrExpiredUtxo):                          SubmitErrExpiredUtxo,
	string(SubmitErrExtraDataMismatch):                    SubmitErrExtraDataMismatch,
	string(SubmitErrExtraRedeemers):                       SubmitErrExtraRedeemers,
	string(SubmitErrExtraScriptWitnesses):                 SubmitErrExtraScriptWitnesses,
	string(SubmitErrFeeTooSmall):                          SubmitErrFeeTooSmall,
	string(SubmitErrInsufficientFundsForMir):              SubmitErrInsufficientFundsForMir,
	string(SubmitErrInsufficientGenesisSignatures):        SubmitErrInsufficientGenesisSignatures,
	string(SubmitErrInvalidMetadata):                      SubmitErrInvalidMetadata,
	string(SubmitErrInvalidWitnesses):                     SubmitErrInvalidWitnesses,
	string(SubmitErrMalformedReferenceScripts):            SubmitErrMalformedReferenceScripts,
	string(SubmitErrMalformedScriptWitnesses):              SubmitErrMalformedScriptWitnesses,
	string(SubmitErrMirNegativeTransfer):                  SubmitErrMirNegativeTransfer,
	string(SubmitErrMirNegativeTransferNotCurrentlyAllowed): SubmitErrMirNegativeTransferNotCurrentlyAllowed,
	string(SubmitErrMirProducesNegativeUpdate):             SubmitErrMirProducesNegativeUpdate,
	string(SubmitErrMirTransferNotCurrentlyAllowed):        SubmitErrMirTransferNotCurrentlyAllowed,
	string(SubmitErrMissingAtLeastOneInputUtxo):            SubmitErrMissingAtLeastOneInputUtxo,
	string(SubmitErrMissingCollateralInputs):               SubmitErrMissingCollateralInputs,
	string(SubmitErrMissingDatumHashesForInputs):           SubmitErrMissingDatumHashesForInputs,
	string(SubmitErrMissingRequiredDatums):                 SubmitErrMissingRequiredDatums,
	string(SubmitErrMissingRequiredRedeemers):              SubmitErrMissingRequiredRedeemers,
	string(SubmitErrMissingRequiredSignatures):             SubmitErrMissingRequiredSignatures,
	string(SubmitErrMissingScriptWitnesses):                SubmitErrMissingScriptWitnesses,
	string(SubmitErrMissingTxMetadata):                     SubmitErrMissingTxMetadata,
	string(SubmitErrMissingTxMetadataHash):                 SubmitErrMissingTxMetadataHash,
	string(SubmitErrMissingVkWitnesses):                    SubmitErrMissingVkWitnesses,
	string(SubmitErrNetworkMismatch):                       SubmitErrNetworkMismatch,
	string(SubmitErrNonGenesisVoters):                      SubmitErrNonGenesisVoters,
	string(SubmitErrOutputTooSmall):                        SubmitErrOutputTooSmall,
	string(SubmitErrOutsideForecast):                       SubmitErrOutsideForecast,
	string(SubmitErrOutsideOfValidityInterval):             SubmitErrOutsideOfValidityInterval,
	string(SubmitErrPoolCostTooSmall):                      SubmitErrPoolCostTooSmall,
	string(SubmitErrPoolMetadataHashTooBig):                SubmitErrPoolMetadataHashTooBig,
	string(SubmitErrProtocolVersionCannotFollow):           SubmitErrProtocolVersionCannotFollow,
	string(SubmitErrRewardAccountNotEmpty):                 SubmitErrRewardAccountNotEmpty,
	string(SubmitErrRewardAccountNotExisting):              SubmitErrRewardAccountNotExisting,
	string(SubmitErrScriptWitnessNotValidating):            SubmitErrScriptWitnessNotValidating,
	string(SubmitErrStakeKeyAlreadyRegistered):             SubmitErrStakeKeyAlreadyRegistered,
	string(SubmitErrStakeKeyNotRegistered):                 SubmitErrStakeKeyNotRegistered,
	string(SubmitErrStakePoolNotRegistered):                SubmitErrStakePoolNotRegistered,
	string(SubmitErrTooLateForMir):                         SubmitErrTooLateForMir,
	string(SubmitErrTooManyAssetsInOutput):                 SubmitErrTooManyAssetsInOutput,
	string(SubmitErrTooManyCollateralInputs):               SubmitErrTooManyCollateralInputs,
	string(SubmitErrTotalCollateralMismatch):                SubmitErrTotalCollateralMismatch,
	string(SubmitErrTriesToForgeAda):                       SubmitErrTriesToForgeAda,
	string(SubmitErrTxMetadataHashMismatch):                SubmitErrTxMetadataHashMismatch,
	string(SubmitErrTxTooLarge):                            SubmitErrTxTooLarge,
	string(SubmitErrUnknownGenesisKey):                     SubmitErrUnknownGenesisKey,
	string(SubmitErrUnknownOrIncompleteWithdrawals):        SubmitErrUnknownOrIncompleteWithdrawals,
	string(SubmitErrUnspendableDatums):                     SubmitErrUnspendableDatums,
	string(SubmitErrUnspendableScriptInputs):                SubmitErrUnspendableScriptInputs,
	string(SubmitErrUpdateWrongEpoch):                      SubmitErrUpdateWrongEpoch,
	string(SubmitErrValidationTagMismatch):                 SubmitErrValidationTagMismatch,
	string(SubmitErrValueNotConserved):                     SubmitErrValueNotConserved,
	string(SubmitErrWrongCertificateType):                  SubmitErrWrongCertificateType,
	string(SubmitErrWrongPoolCertificate):                  SubmitErrWrongPoolCertificate,
	string(SubmitErrWrongRetirementEpoch):                  SubmitErrWrongRetirementEpoch,
}

// SubmitError is one entry of the ordered SubmitTx error list. Raw
// holds the payload under the discriminant key, undecoded: payload
// shapes vary widely (a list of witnesses, a {requiredFee, actualFee}
// pair, and so on); the txsubmission package passes entries through
// unchanged, and callers decode Raw into the shape appropriate for Kind.
type SubmitError struct {
	Kind SubmitErrorKind
	Raw  json.RawMessage
}

func (e *SubmitError) UnmarshalJSON(data []byte) error {
	key, value, err := SingleKey(data)
	if err != nil {
		return err
	}
	kind, ok := knownSubmitErrorKinds[key]
	if !ok {
		*e = SubmitError{Kind: SubmitErrUnknown, Raw: data}
		return nil
	}
	*e = SubmitError{Kind: kind, Raw: value}
	return nil
}

func (e SubmitError) MarshalJSON() ([]byte, error) {
	if e.Kind == SubmitErrUnknown {
		return e.Raw, nil
	}
	return json.Marshal(map[string]json.RawMessage{string(e.Kind): e.Raw})
}

// SubmitErrorList is the bridge-ordered list of SubmitTx errors. Order
// is preserved exactly as received.
type SubmitErrorList []SubmitError
