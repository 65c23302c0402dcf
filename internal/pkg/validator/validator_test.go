package validator

import "testing"

type reserveForm struct {
	VehicleNumber string `json:"vehicle_number" validate:"required,min=2,max=20"`
	VehicleType   string `json:"vehicle_type" validate:"required,vehicle_type"`
	Hours         int    `json:"hours" validate:"required,min=1"`
}

func TestValidateReserveForm(t *testing.T) {
	tests := []struct {
		name      string
		form      reserveForm
		wantField string
	}{
		{
			name: "valid",
			form: reserveForm{VehicleNumber: "KZ123ABC", VehicleType: "car", Hours: 2},
		},
		{
			name:      "missing vehicle number",
			form:      reserveForm{VehicleType: "car", Hours: 2},
			wantField: "vehicle_number",
		},
		{
			name:      "bad vehicle type",
			form:      reserveForm{VehicleNumber: "KZ123ABC", VehicleType: "bicycle", Hours: 2},
			wantField: "vehicle_type",
		},
		{
			name:      "zero hours",
			form:      reserveForm{VehicleNumber: "KZ123ABC", VehicleType: "van", Hours: 0},
			wantField: "hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(&tt.form)
			if tt.wantField == "" {
				if errs != nil {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Fatalf("expected error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestVehicleTypeValues(t *testing.T) {
	for _, v := range []string{"car", "motorcycle", "truck", "van"} {
		if err := ValidateVar(v, "vehicle_type"); err != nil {
			t.Fatalf("expected %q to be a valid vehicle type: %v", v, err)
		}
	}
	if err := ValidateVar("boat", "vehicle_type"); err == nil {
		t.Fatal("expected boat to be rejected")
	}
}

func TestBookingStatusValues(t *testing.T) {
	for _, v := range []string{"active", "cancelled", "expired", "completed", ""} {
		if err := ValidateVar(v, "booking_status"); err != nil {
			t.Fatalf("expected %q to be a valid status filter: %v", v, err)
		}
	}
	if err := ValidateVar("pending", "booking_status"); err == nil {
		t.Fatal("expected pending to be rejected")
	}
}

func TestValidateUsesJSONFieldNames(t *testing.T) {
	form := reserveForm{VehicleType: "car", Hours: 1}
	errs := Validate(&form)
	if _, ok := errs["VehicleNumber"]; ok {
		t.Fatal("expected json tag name, got Go field name")
	}
	if _, ok := errs["vehicle_number"]; !ok {
		t.Fatalf("expected vehicle_number key, got %v", errs)
	}
}
