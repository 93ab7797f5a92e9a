package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/THGoZ/lauch-shifts-sub001/internal/calendar"
	"github.com/THGoZ/lauch-shifts-sub001/internal/result"
	"github.com/THGoZ/lauch-shifts-sub001/internal/shift"
)

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// Patients

func createPatientHandler(svc *shift.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload shift.PatientPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			badRequest(w, "could not parse JSON body")
			return
		}
		writeResult(w, http.StatusCreated, svc.CreatePatient(r.Context(), payload))
	}
}

func listPatientsHandler(svc *shift.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, http.StatusOK, svc.ListPatients(r.Context()))
	}
}

func getPatientHandler(svc *shift.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			badRequest(w, "id must be a positive integer")
			return
		}
		writeResult(w, http.StatusOK, svc.GetPatient(r.Context(), id))
	}
}

func deletePatientHandler(svc *shift.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			badRequest(w, "id must be a positive integer")
			return
		}
		writeResult(w, http.StatusOK, svc.DeletePatient(r.Context(), id))
	}
}

// Shifts

func createShiftHandler(svc *shift.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload shift.CreateShiftPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			badRequest(w, "could not parse JSON body")
			return
		}
		writeResult(w, http.StatusCreated, svc.CreateShift(r.Context(), payload))
	}
}

func listShiftsHandler(svc *shift.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, ok := calendar.ParseFilter(r.URL.Query().Get("status"))
		if !ok {
			badRequest(w, "status must be one of pending, confirmed, canceled, all")
			return
		}

		var res result.Of[[]shift.ShiftWithPatient]
		if raw := r.URL.Query().Get("patient_id"); raw != "" {
			patientID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				badRequest(w, "patient_id must be a positive integer")
				return
			}
			res = svc.ListShiftsByPatient(r.Context(), patientID)
		} else {
			res = svc.ListShifts(r.Context())
		}

		if res.Success {
			res.Result = calendar.Filter(filter, res.Result)
		}
		writeResult(w, http.StatusOK, res)
	}
}

func getShiftHandler(svc *shift.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			badRequest(w, "id must be a positive integer")
			return
		}
		writeResult(w, http.StatusOK, svc.GetShift(r.Context(), id))
	}
}

func updateShiftStatusHandler(svc *shift.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			badRequest(w, "id must be a positive integer")
			return
		}
		var payload shift.UpdateStatusPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			badRequest(w, "could not parse JSON body")
			return
		}
		writeResult(w, http.StatusOK, svc.UpdateShiftStatus(r.Context(), id, payload))
	}
}

func deleteShiftHandler(svc *shift.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			badRequest(w, "id must be a positive integer")
			return
		}
		writeResult(w, http.StatusOK, svc.DeleteShift(r.Context(), id))
	}
}

// Calendar projections

func agendaHandler(svc *shift.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			date = time.Now().Format(calendar.DateLayout)
		}
		week, err := calendar.WeekOf(date)
		if err != nil {
			badRequest(w, "date must be formatted YYYY-MM-DD")
			return
		}

		res := svc.ListShifts(r.Context())
		if !res.Success {
			writeResult(w, http.StatusOK, res)
			return
		}

		sections := calendar.Agenda(res.Result, week)
		writeResult(w, http.StatusOK, result.Ok(sections).WithExtra("week", week))
	}
}

func timelineHandler(svc *shift.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := chi.URLParam(r, "date")

		res := svc.ListShifts(r.Context())
		if !res.Success {
			writeResult(w, http.StatusOK, res)
			return
		}

		var onDate []shift.ShiftWithPatient
		for _, s := range res.Result {
			if s.Date == date {
				onDate = append(onDate, s)
			}
		}

		events, err := calendar.TimelineEvents(date, onDate)
		if err != nil {
			badRequest(w, "date must be formatted YYYY-MM-DD")
			return
		}
		writeResult(w, http.StatusOK, result.Ok(events))
	}
}

func markedDatesHandler(svc *shift.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := svc.ListShifts(r.Context())
		if !res.Success {
			writeResult(w, http.StatusOK, res)
			return
		}
		writeResult(w, http.StatusOK, result.Ok(calendar.MarkedDates(res.Result)))
	}
}

// Availability

func availabilityHandler(svc *shift.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, http.StatusOK, svc.ListAvailability(r.Context()))
	}
}
