package model

// SpacesUpdate asks for BookedSpaces to be taken off an activity's spaces.
type SpacesUpdate struct {
	ID           string `json:"_id" validate:"required,mongodb"`
	BookedSpaces int    `json:"bookedSpaces"`
}

// SpacesUpdateResult is the outcome of one element of a batch update.
type SpacesUpdateResult struct {
	ID      string `json:"_id"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func (r SpacesUpdateResult) Failed() bool {
	return r.Error != ""
}

type SpacesUpdateSummary struct {
	Message string               `json:"message"`
	Results []SpacesUpdateResult `json:"results,omitempty"`
}
