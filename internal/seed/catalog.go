package seed

// Fixed reference data for three Phoenix-area shops. Stock levels, sales and
// reorders are generated around it by Generate.

type categoryRow struct{ id, name, description string }

var categories = []categoryRow{
	{"cat-1", "Brakes", "Brake pads, rotors, calipers, and brake fluid"},
	{"cat-2", "Engine Parts", "Engine components, gaskets, and seals"},
	{"cat-3", "Filters", "Oil, air, fuel, and cabin filters"},
	{"cat-4", "Suspension", "Shocks, struts, springs, and control arms"},
	{"cat-5", "Electrical", "Batteries, alternators, starters, and wiring"},
	{"cat-6", "Cooling System", "Radiators, water pumps, thermostats, and hoses"},
	{"cat-7", "Transmission", "Clutches, CV joints, and transmission fluids"},
	{"cat-8", "Exhaust", "Mufflers, catalytic converters, and exhaust pipes"},
	{"cat-9", "Lighting", "Headlights, taillights, bulbs, and LED upgrades"},
	{"cat-10", "Body Parts", "Mirrors, bumpers, fenders, and trim"},
}

type supplierRow struct {
	id, name, contact, email, phone, address, city, state, zip, notes string
}

var suppliers = []supplierRow{
	{"sup-1", "AutoZone Distribution", "Mike Rodriguez", "mike@autozone-dist.com", "(602) 555-0101",
		"4521 W McDowell Rd", "Phoenix", "Arizona", "85035", "Main brake parts supplier, 2-day delivery"},
	{"sup-2", "O'Reilly Auto Parts Wholesale", "Sarah Thompson", "sarah@oreilly-wholesale.com", "(602) 555-0102",
		"2100 E Camelback Rd", "Phoenix", "Arizona", "85016", "Fast turnaround on electrical parts"},
	{"sup-3", "NAPA Phoenix Hub", "James Wilson", "james@napa-phoenix.com", "(480) 555-0103",
		"8910 E Indian School Rd", "Scottsdale", "Arizona", "85251", "Premium quality parts, warranty included"},
	{"sup-4", "RockAuto Southwest", "Linda Garcia", "linda@rockauto-sw.com", "(623) 555-0104",
		"15601 N 28th Ave", "Phoenix", "Arizona", "85053", "Best prices on suspension and exhaust"},
	{"sup-5", "Advance Auto Parts Distribution", "Robert Chen", "robert@advanceauto-dist.com", "(480) 555-0105",
		"1250 S Dobson Rd", "Mesa", "Arizona", "85202", "Next-day delivery on most items"},
}

type productRow struct {
	id, name, sku, brand, partNumber, cost, unit, categoryID, supplierID, description string
}

var products = []productRow{
	{"prod-1", "Premium Ceramic Brake Pads - Front", "BRK-001", "Bosch", "BC905", "35.99", "59.99", "cat-1", "sup-1", "High-performance ceramic brake pads for smooth, quiet braking"},
	{"prod-2", "Brake Rotor - Front", "BRK-002", "ACDelco", "18A1705A", "45.00", "79.99", "cat-1", "sup-1", "OEM quality vented brake rotor"},
	{"prod-3", "Brake Caliper - Rear Left", "BRK-003", "Cardone", "19-B2973", "65.00", "109.99", "cat-1", "sup-1", "Remanufactured brake caliper with core exchange"},
	{"prod-4", "DOT 4 Brake Fluid 32oz", "BRK-004", "Prestone", "AS401", "8.50", "14.99", "cat-1", "sup-3", "High-temp brake fluid for all vehicles"},
	{"prod-5", "Spark Plugs - Iridium (Set of 4)", "ENG-001", "NGK", "6619", "28.00", "49.99", "cat-2", "sup-2", "Long-life iridium spark plugs"},
	{"prod-6", "Timing Belt Kit", "ENG-002", "Gates", "TCKWP329", "125.00", "199.99", "cat-2", "sup-3", "Complete timing belt kit with water pump"},
	{"prod-7", "Head Gasket Set", "ENG-003", "Fel-Pro", "HS26317PT", "89.00", "149.99", "cat-2", "sup-3", "Multi-layer steel head gasket set"},
	{"prod-8", "Motor Oil 5W-30 5Qt", "ENG-004", "Mobil 1", "120764", "24.00", "39.99", "cat-2", "sup-5", "Full synthetic motor oil"},
	{"prod-9", "Engine Air Filter", "FLT-001", "K&N", "33-2364", "35.00", "59.99", "cat-3", "sup-2", "High-flow washable air filter"},
	{"prod-10", "Oil Filter", "FLT-002", "Fram", "PH7317", "6.00", "11.99", "cat-3", "sup-5", "Premium oil filter with anti-drain valve"},
	{"prod-11", "Cabin Air Filter", "FLT-003", "Bosch", "6055C", "15.00", "24.99", "cat-3", "sup-2", "HEPA cabin air filter"},
	{"prod-12", "Fuel Filter", "FLT-004", "ACDelco", "GF652", "18.00", "32.99", "cat-3", "sup-1", "In-line fuel filter"},
	{"prod-13", "Front Strut Assembly", "SUS-001", "Monroe", "172233", "85.00", "149.99", "cat-4", "sup-4", "Complete strut assembly with spring"},
	{"prod-14", "Rear Shock Absorber", "SUS-002", "KYB", "349105", "45.00", "79.99", "cat-4", "sup-4", "Gas-charged shock absorber"},
	{"prod-15", "Control Arm - Front Lower", "SUS-003", "Moog", "RK620375", "75.00", "129.99", "cat-4", "sup-4", "Premium control arm with ball joint"},
	{"prod-16", "Car Battery 12V", "ELC-001", "DieHard", "50748", "95.00", "159.99", "cat-5", "sup-2", "Gold series automotive battery"},
	{"prod-17", "Alternator", "ELC-002", "Denso", "210-0548", "145.00", "249.99", "cat-5", "sup-3", "OEM replacement alternator"},
	{"prod-18", "Starter Motor", "ELC-003", "Bosch", "SR0463X", "110.00", "189.99", "cat-5", "sup-3", "Remanufactured starter motor"},
	{"prod-19", "Radiator", "COL-001", "Spectra Premium", "CU2951", "125.00", "219.99", "cat-6", "sup-5", "Direct-fit aluminum radiator"},
	{"prod-20", "Water Pump", "COL-002", "GMB", "130-7340", "35.00", "64.99", "cat-6", "sup-5", "OE-quality water pump"},
	{"prod-21", "Thermostat Housing Kit", "COL-003", "Dorman", "902-204", "28.00", "49.99", "cat-6", "sup-5", "Complete thermostat housing assembly"},
	{"prod-22", "Coolant 50/50 1Gal", "COL-004", "Zerex", "ZXG051", "12.00", "21.99", "cat-6", "sup-2", "Pre-mixed antifreeze/coolant"},
	{"prod-23", "Headlight Bulb H11 (Pair)", "LGT-001", "Sylvania", "H11XV2BP", "35.00", "59.99", "cat-9", "sup-2", "XtraVision high-performance bulbs"},
	{"prod-24", "LED Headlight Conversion Kit", "LGT-002", "Auxbeam", "F-16", "55.00", "99.99", "cat-9", "sup-4", "6000K LED headlight kit"},
	{"prod-25", "Catalytic Converter - Universal", "EXH-001", "Walker", "15634", "185.00", "329.99", "cat-8", "sup-4", "EPA compliant catalytic converter"},
	{"prod-26", "Muffler - Performance", "EXH-002", "Flowmaster", "42441", "95.00", "169.99", "cat-8", "sup-4", "Original 40 series muffler"},}

type shopRow struct {
	id, name, location, email, phone, address, city, state, zip string
}

var shops = []shopRow{
	{"shop-1", "Phoenix Auto Parts Central", "Central Phoenix", "central@phoenixautoparts.com", "(602) 555-1000",
		"2301 N 7th St", "Phoenix", "Arizona", "85006"},
	{"shop-2", "Scottsdale Auto Supply", "Scottsdale", "scottsdale@phoenixautoparts.com", "(480) 555-2000",
		"7014 E Camelback Rd", "Scottsdale", "Arizona", "85251"},
	{"shop-3", "Mesa Auto Parts Warehouse", "Mesa", "mesa@phoenixautoparts.com", "(480) 555-3000",
		"1455 W Southern Ave", "Mesa", "Arizona", "85202"},
}

var (
	customerNames  = []string{"John Smith", "Maria Garcia", "David Johnson", "Lisa Chen"}
	paymentMethods = []string{"cash", "card", "check"}
)

// DemoUser owns generated sales and reorder requests.
const DemoUser = "demo-user"
